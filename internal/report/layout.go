package report

import (
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ColumnKind string

const (
	ColumnDay       ColumnKind = "day"
	ColumnWeekTotal ColumnKind = "week_total"
)

// Column is one rendered column of the day grid. Header and every data row share the same plan.
type Column struct {
	Kind      ColumnKind `json:"kind"`
	Day       int        `json:"day,omitempty"`
	WeekIndex int        `json:"week_index"`
	ColSpan   int        `json:"col_span"`
	Collapsed bool       `json:"collapsed,omitempty"`
	Weekend   bool       `json:"weekend,omitempty"`
}

// PlanColumns walks the month day by day. A week-total column always follows the
// boundary day's own column; a collapsed week keeps only its total, spanning the whole week.
func PlanColumns(cal Calendar, collapse CollapseState) []Column {
	columns := make([]Column, 0, cal.DaysInMonth+cal.WeekCount())

	for d := 1; d <= cal.DaysInMonth; d++ {
		w := cal.WeekOf(d)
		collapsed := collapse.IsCollapsed(w)

		if !collapsed {
			columns = append(columns, Column{
				Kind:      ColumnDay,
				Day:       d,
				WeekIndex: w,
				ColSpan:   1,
				Weekend:   cal.IsWeekend(d),
			})
		}

		if cal.WeekBoundaries[w] != d {
			continue
		}

		span := 1
		if collapsed {
			span = cal.WeekLength(w)
		}
		columns = append(columns, Column{
			Kind:      ColumnWeekTotal,
			Day:       d,
			WeekIndex: w,
			ColSpan:   span,
			Collapsed: collapsed,
		})
	}

	return columns
}

// RowPlan is a data row ready for the table renderer.
type RowPlan struct {
	Row           ReportRow `json:"row"`
	ShowWorkplace bool      `json:"show_workplace"`
	RowSpan       int       `json:"row_span"`
	Highlight     bool      `json:"highlight"`
	Summary       []Cell    `json:"summary"`
	Cells         []Cell    `json:"cells"`
}

// MergeRows computes the vertical merge of the workplace cell. Rows must be grouped by workplace code.
func MergeRows(rows []ReportRow) []RowPlan {
	plans := make([]RowPlan, len(rows))

	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && rows[j].WorkplaceCode == rows[i].WorkplaceCode {
			j++
		}

		for k := i; k < j; k++ {
			plans[k] = RowPlan{
				Row:       rows[k],
				Highlight: rows[k].RowType == RowTypeRate,
			}
		}
		plans[i].ShowWorkplace = true
		plans[i].RowSpan = j - i

		i = j
	}

	return plans
}

// Cell is one formatted value of a row.
type Cell struct {
	Kind      ColumnKind `json:"kind"`
	Day       int        `json:"day,omitempty"`
	WeekIndex int        `json:"week_index"`
	ColSpan   int        `json:"col_span"`
	Value     float64    `json:"value"`
	Text      string     `json:"text"`
	Highlight bool       `json:"highlight,omitempty"`
}

func PlanCells(row ReportRow, columns []Column, f Formatter) []Cell {
	rate := row.RowType == RowTypeRate
	cells := make([]Cell, 0, len(columns))

	for _, c := range columns {
		var v float64
		if c.Kind == ColumnWeekTotal {
			v = row.WeekTotal(c.WeekIndex)
		} else {
			v = row.Day(c.Day)
		}

		cells = append(cells, Cell{
			Kind:      c.Kind,
			Day:       c.Day,
			WeekIndex: c.WeekIndex,
			ColSpan:   c.ColSpan,
			Value:     v,
			Text:      f.Format(v, row.RowType),
			Highlight: rate,
		})
	}

	return cells
}

// SummaryFields names the leading per-row totals in display order.
var SummaryFields = []string{KeyMonthTarget, KeyMonthPlan, KeyOrderBacklog, KeyNextMonthCarry, KeyTotal}

func PlanSummary(row ReportRow, f Formatter) []Cell {
	values := []float64{row.MonthTarget, row.MonthPlan, row.OrderBacklog, row.NextMonthCarry, row.Total}
	rate := row.RowType == RowTypeRate

	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{
			ColSpan:   1,
			WeekIndex: -1,
			Value:     v,
			Text:      f.Format(v, row.RowType),
			Highlight: rate,
		}
	}
	return cells
}

// PlanRows merges rows and fills their cells against a shared column plan.
func PlanRows(rows []ReportRow, columns []Column, f Formatter) []RowPlan {
	plans := MergeRows(rows)
	for i := range plans {
		plans[i].Summary = PlanSummary(plans[i].Row, f)
		plans[i].Cells = PlanCells(plans[i].Row, columns, f)
	}
	return plans
}

// Formatter renders cell values. Zero renders as an empty string.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}
	return Formatter{printer: message.NewPrinter(tag)}
}

func (f Formatter) Format(v float64, t RowType) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	if t == RowTypeRate {
		return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "%"
	}

	n := int64(math.Round(v))
	if n == 0 {
		return ""
	}
	if f.printer == nil {
		return strconv.FormatInt(n, 10)
	}
	return f.printer.Sprintf("%d", n)
}

// ColumnWidths maps a column to its pixel width per unit of span.
type ColumnWidths struct {
	Day       int `json:"day"`
	WeekTotal int `json:"week_total"`
}

func (cw ColumnWidths) Width(c Column) int {
	unit := cw.Day
	if c.Kind == ColumnWeekTotal {
		unit = cw.WeekTotal
	}
	if unit < 0 {
		unit = 0
	}
	return unit * c.ColSpan
}

// ScrollOffsets returns the sorted left edges of all week-total columns, starting with 0.
func ScrollOffsets(columns []Column, widths ColumnWidths) []int {
	offsets := []int{0}

	x := 0
	for _, c := range columns {
		if c.Kind == ColumnWeekTotal {
			offsets = append(offsets, x)
		}
		x += widths.Width(c)
	}

	return NormalizeOffsets(offsets)
}

// NormalizeOffsets returns a sorted copy of offsets without duplicates and negative values.
func NormalizeOffsets(offsets []int) []int {
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o >= 0 {
			out = append(out, o)
		}
	}
	sort.Ints(out)

	uniq := out[:0]
	for i, o := range out {
		if i == 0 || o != out[i-1] {
			uniq = append(uniq, o)
		}
	}
	return uniq
}

// scrollSlack absorbs sub-pixel drift of the rendered scroll position.
const scrollSlack = 1

// ScrollByWeek moves from current to the next (direction > 0) or previous (direction < 0) offset.
// offsets must be sorted (see NormalizeOffsets). It never moves against direction and reports false
// when there is nothing to scroll to.
func ScrollByWeek(offsets []int, current int, direction int) (int, bool) {
	if len(offsets) == 0 || direction == 0 {
		return current, false
	}

	first, last := offsets[0], offsets[len(offsets)-1]

	if direction > 0 {
		i := sort.SearchInts(offsets, current+scrollSlack+1)
		if i < len(offsets) {
			return offsets[i], true
		}
		if last > current {
			return last, true
		}
		return current, false
	}

	i := sort.SearchInts(offsets, current-scrollSlack) - 1
	if i >= 0 {
		return offsets[i], true
	}
	if first < current {
		return first, true
	}
	return current, false
}
