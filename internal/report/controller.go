package report

import (
	"context"
	"sync"
)

// Fetcher loads raw rows for a period. Implementations swallow their own errors and return an empty list.
type Fetcher interface {
	FetchRows(ctx context.Context, p Period) []map[string]any
}

// State is what survives between sessions: the selected period and the collapsed weeks.
type State struct {
	Period   Period
	Collapse CollapseState
}

// Snapshot is an immutable view of the report handed to renderers.
type Snapshot struct {
	Period    string       `json:"period"`
	Calendar  Calendar     `json:"calendar"`
	Collapsed []int        `json:"collapsed"`
	Summary   []string     `json:"summary_fields"`
	Columns   []Column     `json:"columns"`
	Rows      []RowPlan    `json:"rows"`
	Offsets   []int        `json:"offsets"`
	Widths    ColumnWidths `json:"widths"`
	Loading   bool         `json:"loading"`
}

// Settings carries the presentation inputs shared by every controller.
type Settings struct {
	Formatter Formatter
	Widths    ColumnWidths
}

func (s Settings) NewController(fetcher Fetcher) *Controller {
	return NewController(fetcher, s.Formatter, s.Widths)
}

// Controller owns the report state. Fetch results only land when they belong to the
// most recently selected period; a late answer for an older period is dropped.
type Controller struct {
	fetcher   Fetcher
	formatter Formatter
	widths    ColumnWidths

	mu       sync.Mutex
	period   Period
	collapse CollapseState
	rows     []ReportRow
	loading  bool
}

func NewController(fetcher Fetcher, formatter Formatter, widths ColumnWidths) *Controller {
	return &Controller{
		fetcher:   fetcher,
		formatter: formatter,
		widths:    widths,
		collapse:  NewCollapseState(),
		rows:      []ReportRow{},
	}
}

func (c *Controller) Init(st State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.period = st.Period
	c.collapse = st.Collapse
	if c.collapse.weeks == nil {
		c.collapse = NewCollapseState()
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{Period: c.period, Collapse: c.collapse}
}

// SelectPeriod makes p current and loads its rows. It reports whether the result was applied.
func (c *Controller) SelectPeriod(ctx context.Context, p Period) bool {
	c.mu.Lock()
	c.period = p
	c.loading = true
	c.mu.Unlock()

	raw := c.fetcher.FetchRows(ctx, p)
	rows := NormalizeAll(raw)

	return c.apply(p, rows)
}

func (c *Controller) apply(p Period, rows []ReportRow) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p != c.period {
		return false
	}

	c.rows = rows
	c.loading = false
	return true
}

func (c *Controller) ToggleWeek(w int) CollapseState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.collapse = c.collapse.Toggle(w)
	return c.collapse
}

// ScrollByWeek is pure arithmetic over the current snapshot's offsets.
func (c *Controller) ScrollByWeek(current, direction int) (int, bool) {
	snap := c.Snapshot()
	return ScrollByWeek(snap.Offsets, current, direction)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	period := c.period
	collapse := c.collapse
	rows := c.rows
	loading := c.loading
	c.mu.Unlock()

	cal := NewCalendar(period)
	columns := PlanColumns(cal, collapse)

	return Snapshot{
		Period:    period.String(),
		Calendar:  cal,
		Collapsed: collapse.Indices(),
		Summary:   SummaryFields,
		Columns:   columns,
		Rows:      PlanRows(rows, columns, c.formatter),
		Offsets:   ScrollOffsets(columns, c.widths),
		Widths:    c.widths,
		Loading:   loading,
	}
}
