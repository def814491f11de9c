package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"mes-console/internal/report"
)

const sheet = "План-факт"

var summaryTitles = map[string]string{
	report.KeyMonthTarget:    "Цель месяца",
	report.KeyMonthPlan:      "План месяца",
	report.KeyOrderBacklog:   "Портфель заказов",
	report.KeyNextMonthCarry: "Перенос",
	report.KeyTotal:          "Итого",
}

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

type styles struct {
	header  int
	weekend int
	week    int
	rate    int
	name    int
}

// MonthlyExcel renders a report snapshot into an xlsx workbook. Spans of the layout become merged cells.
func (s *ExcelService) MonthlyExcel(snap report.Snapshot) ([]byte, error) {
	const op = "service.export.MonthlyExcel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: стили: %w", op, err)
	}

	// 1. шапка: участок, показатель, итоговые поля, затем сетка дней
	lead := []string{"Участок", "Показатель"}
	for _, key := range snap.Summary {
		lead = append(lead, summaryTitles[key])
	}
	for i, title := range lead {
		f.SetCellValue(sheet, cellName(i+1, 1), title)
	}
	firstGridCol := len(lead) + 1

	col := firstGridCol
	for _, c := range snap.Columns {
		cell := cellName(col, 1)
		style := st.header

		if c.Kind == report.ColumnWeekTotal {
			f.SetCellValue(sheet, cell, "Нед. "+strconv.Itoa(c.WeekIndex+1))
			style = st.week
		} else {
			f.SetCellValue(sheet, cell, c.Day)
			if c.Weekend {
				style = st.weekend
			}
		}

		if err := mergeAcross(f, col, 1, c.ColSpan); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		f.SetCellStyle(sheet, cell, cellName(col+c.ColSpan-1, 1), style)
		col += c.ColSpan
	}
	lastCol := col - 1
	if lastCol < len(lead) {
		lastCol = len(lead)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(lead), 1), st.header)

	// 2. строки
	for i, rp := range snap.Rows {
		rowNum := i + 2

		if rp.ShowWorkplace {
			f.SetCellValue(sheet, cellName(1, rowNum), rp.Row.WorkplaceName)
			if rp.RowSpan > 1 {
				if err := f.MergeCell(sheet, cellName(1, rowNum), cellName(1, rowNum+rp.RowSpan-1)); err != nil {
					return nil, fmt.Errorf("%s: объединение участка: %w", op, err)
				}
			}
			f.SetCellStyle(sheet, cellName(1, rowNum), cellName(1, rowNum+max(rp.RowSpan, 1)-1), st.name)
		}
		f.SetCellValue(sheet, cellName(2, rowNum), rp.Row.RowTypeName)

		for j, c := range rp.Summary {
			setValue(f, cellName(3+j, rowNum), c, rp.Row.RowType)
		}

		col := firstGridCol
		for _, c := range rp.Cells {
			setValue(f, cellName(col, rowNum), c, rp.Row.RowType)
			if err := mergeAcross(f, col, rowNum, c.ColSpan); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			col += c.ColSpan
		}

		if rp.Highlight {
			f.SetCellStyle(sheet, cellName(2, rowNum), cellName(lastCol, rowNum), st.rate)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      firstGridCol - 1,
		YSplit:      1,
		TopLeftCell: cellName(firstGridCol, 2),
		ActivePane:  "bottomRight",
	})

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 16)
	if firstGridCol > 3 {
		f.SetColWidth(sheet, colName(3), colName(firstGridCol-1), 14)
	}
	if lastCol >= firstGridCol {
		f.SetColWidth(sheet, colName(firstGridCol), colName(lastCol), 7)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// setValue leaves blank what the layout renders blank; rates keep their percent text.
func setValue(f *excelize.File, cell string, c report.Cell, t report.RowType) {
	if c.Text == "" {
		return
	}
	if t == report.RowTypeRate {
		f.SetCellValue(sheet, cell, c.Text)
		return
	}
	f.SetCellValue(sheet, cell, c.Value)
}

func mergeAcross(f *excelize.File, col, row, span int) error {
	if span <= 1 {
		return nil
	}
	return f.MergeCell(sheet, cellName(col, row), cellName(col+span-1, row))
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	border := []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	}); err != nil {
		return st, err
	}
	if st.weekend, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "C00000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FDE9E7"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	}); err != nil {
		return st, err
	}
	if st.week, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	}); err != nil {
		return st, err
	}
	if st.rate, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "1F4E79"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	if st.name, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	}); err != nil {
		return st, err
	}

	return st, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
