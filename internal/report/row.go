package report

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type RowType string

const (
	RowTypePlan   RowType = "PLAN"
	RowTypeActual RowType = "ACTUAL"
	RowTypeRate   RowType = "RATE"
)

// RowTypes lists the categories in display order.
var RowTypes = []RowType{RowTypePlan, RowTypeActual, RowTypeRate}

func (t RowType) Valid() bool {
	switch t {
	case RowTypePlan, RowTypeActual, RowTypeRate:
		return true
	}
	return false
}

// Keys of the raw row payload produced by the data endpoint.
const (
	KeyWorkplaceCode  = "workplaceCode"
	KeyWorkplaceName  = "workplaceName"
	KeyRowType        = "rowType"
	KeyRowTypeName    = "rowTypeName"
	KeyMonthTarget    = "monthTarget"
	KeyMonthPlan      = "monthPlan"
	KeyOrderBacklog   = "orderBacklog"
	KeyNextMonthCarry = "nextMonthCarry"
	KeyTotal          = "total"
	KeyDays           = "days"
	KeyWeekTotals     = "weekTotals"
)

// ReportRow is one (workplace, category) line of the monthly report.
type ReportRow struct {
	WorkplaceCode  string    `json:"workplaceCode"`
	WorkplaceName  string    `json:"workplaceName"`
	RowType        RowType   `json:"rowType"`
	RowTypeName    string    `json:"rowTypeName"`
	MonthTarget    float64   `json:"monthTarget"`
	MonthPlan      float64   `json:"monthPlan"`
	OrderBacklog   float64   `json:"orderBacklog"`
	NextMonthCarry float64   `json:"nextMonthCarry"`
	Total          float64   `json:"total"`
	Days           []float64 `json:"days"`
	WeekTotals     []float64 `json:"weekTotals"`
}

// Day returns the value for day (1-based); missing days read as zero.
func (r ReportRow) Day(day int) float64 {
	if day < 1 || day > len(r.Days) {
		return 0
	}
	return r.Days[day-1]
}

func (r ReportRow) WeekTotal(w int) float64 {
	if w < 0 || w >= len(r.WeekTotals) {
		return 0
	}
	return r.WeekTotals[w]
}

// Normalize turns an arbitrary server record into a ReportRow. It is total and never panics.
func Normalize(raw map[string]any) ReportRow {
	rowType := RowType(strings.ToUpper(toString(raw[KeyRowType])))
	if !rowType.Valid() {
		rowType = RowTypePlan
	}

	return ReportRow{
		WorkplaceCode:  toString(raw[KeyWorkplaceCode]),
		WorkplaceName:  toString(raw[KeyWorkplaceName]),
		RowType:        rowType,
		RowTypeName:    toString(raw[KeyRowTypeName]),
		MonthTarget:    toNumber(raw[KeyMonthTarget]),
		MonthPlan:      toNumber(raw[KeyMonthPlan]),
		OrderBacklog:   toNumber(raw[KeyOrderBacklog]),
		NextMonthCarry: toNumber(raw[KeyNextMonthCarry]),
		Total:          toNumber(raw[KeyTotal]),
		Days:           toNumbers(raw[KeyDays]),
		WeekTotals:     toNumbers(raw[KeyWeekTotals]),
	}
}

func NormalizeAll(raw []map[string]any) []ReportRow {
	rows := make([]ReportRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, Normalize(r))
	}
	return rows
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

func toNumber(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case *float64:
		if n != nil {
			f = *n
		}
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toNumbers(v any) []float64 {
	switch list := v.(type) {
	case []any:
		out := make([]float64, len(list))
		for i, e := range list {
			out[i] = toNumber(e)
		}
		return out
	case []float64:
		out := make([]float64, len(list))
		for i, e := range list {
			out[i] = toNumber(e)
		}
		return out
	case []*float64:
		out := make([]float64, len(list))
		for i, e := range list {
			out[i] = toNumber(e)
		}
		return out
	case []int:
		out := make([]float64, len(list))
		for i, e := range list {
			out[i] = float64(e)
		}
		return out
	}
	return []float64{}
}
