package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"mes-console/internal/report"
)

func testSnapshot(collapse report.CollapseState) report.Snapshot {
	p := report.Period{Year: 2024, Month: time.January}
	cal := report.NewCalendar(p)
	columns := report.PlanColumns(cal, collapse)

	days := make([]float64, cal.DaysInMonth)
	for i := range days {
		days[i] = 10
	}
	weeks := []float64{70, 70, 70, 70, 30}

	rows := []report.ReportRow{
		{WorkplaceCode: "W1", WorkplaceName: "Сборка", RowType: report.RowTypePlan, RowTypeName: "План", Days: days, WeekTotals: weeks, Total: 310},
		{WorkplaceCode: "W1", WorkplaceName: "Сборка", RowType: report.RowTypeActual, RowTypeName: "Факт", Days: days, WeekTotals: weeks, Total: 310},
		{WorkplaceCode: "W1", WorkplaceName: "Сборка", RowType: report.RowTypeRate, RowTypeName: "%", WeekTotals: []float64{100}, Total: 100},
		{WorkplaceCode: "W2", WorkplaceName: "Покраска", RowType: report.RowTypePlan, RowTypeName: "План"},
	}

	return report.Snapshot{
		Period:    p.String(),
		Calendar:  cal,
		Collapsed: collapse.Indices(),
		Summary:   report.SummaryFields,
		Columns:   columns,
		Rows:      report.PlanRows(rows, columns, report.NewFormatter("en-US")),
	}
}

func openWorkbook(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestMonthlyExcel_MergesWorkplaceAndCollapsedWeek(t *testing.T) {
	b, err := NewExcelService().MonthlyExcel(testSnapshot(report.NewCollapseState(0)))
	require.NoError(t, err)

	f := openWorkbook(t, b)

	merged, err := f.GetMergeCells(sheet)
	require.NoError(t, err)

	refs := map[string]bool{}
	for _, m := range merged {
		refs[m.GetStartAxis()+":"+m.GetEndAxis()] = true
	}
	assert.True(t, refs["A2:A4"], "workplace W1 spans its three rows")
	assert.True(t, refs["H1:N1"], "collapsed week header spans seven columns")
	assert.True(t, refs["H2:N2"], "collapsed week cell spans seven columns")

	v, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Сборка", v)

	v, _ = f.GetCellValue(sheet, "A5")
	assert.Equal(t, "Покраска", v)

	v, _ = f.GetCellValue(sheet, "H1")
	assert.Equal(t, "Нед. 1", v)

	v, _ = f.GetCellValue(sheet, "O1")
	assert.Equal(t, "8", v)

	v, _ = f.GetCellValue(sheet, "H4")
	assert.Equal(t, "100%", v)

	v, _ = f.GetCellValue(sheet, "G4")
	assert.Equal(t, "100%", v)
}

func TestMonthlyExcel_ZeroStaysBlank(t *testing.T) {
	b, err := NewExcelService().MonthlyExcel(testSnapshot(report.NewCollapseState()))
	require.NoError(t, err)

	f := openWorkbook(t, b)

	// W2 has no data at all
	v, _ := f.GetCellValue(sheet, "H5")
	assert.Equal(t, "", v)

	v, _ = f.GetCellValue(sheet, "H2")
	assert.Equal(t, "10", v)

	v, _ = f.GetCellValue(sheet, "O1")
	assert.Equal(t, "Нед. 1", v)
}

func TestMonthlyExcel_EmptySnapshot(t *testing.T) {
	b, err := NewExcelService().MonthlyExcel(report.Snapshot{Summary: report.SummaryFields})
	require.NoError(t, err)

	f := openWorkbook(t, b)
	v, _ := f.GetCellValue(sheet, "A1")
	assert.Equal(t, "Участок", v)
}
