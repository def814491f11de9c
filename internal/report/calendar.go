package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a selected report month.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year int, month time.Month) (Period, error) {
	const op = "report.NewPeriod"

	if year < 1000 || year > 9999 {
		return Period{}, fmt.Errorf("%s: год вне диапазона: %d", op, year)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%s: месяц вне диапазона: %d", op, month)
	}

	return Period{Year: year, Month: month}, nil
}

// ParsePeriod accepts "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	const op = "report.ParsePeriod"

	s = strings.TrimSpace(s)
	if len(s) != 7 || s[4] != '-' {
		return Period{}, fmt.Errorf("%s: ожидается формат YYYY-MM, получено %q", op, s)
	}

	return parseParts(op, s[:4], s[5:])
}

// ParseCompactPeriod accepts "YYYYMM".
func ParseCompactPeriod(s string) (Period, error) {
	const op = "report.ParseCompactPeriod"

	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return Period{}, fmt.Errorf("%s: ожидается формат YYYYMM, получено %q", op, s)
	}

	return parseParts(op, s[:4], s[4:])
}

func parseParts(op, yearStr, monthStr string) (Period, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Period{}, fmt.Errorf("%s: неверный год: %w", op, err)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return Period{}, fmt.Errorf("%s: неверный месяц: %w", op, err)
	}

	return NewPeriod(year, time.Month(month))
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Compact is the 6-digit form used by the data endpoint.
func (p Period) Compact() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// weekOffsets are the fixed candidate boundaries; the month end always closes the last week.
var weekOffsets = [...]int{7, 14, 21, 28}

// Calendar describes the day grid of one period.
type Calendar struct {
	Period         Period `json:"period"`
	DaysInMonth    int    `json:"days_in_month"`
	WeekBoundaries []int  `json:"week_boundaries"`
	Weekends       []bool `json:"weekends"`
}

func NewCalendar(p Period) Calendar {
	first := p.FirstDay()
	days := first.AddDate(0, 1, -1).Day()

	boundaries := make([]int, 0, len(weekOffsets)+1)
	for _, off := range weekOffsets {
		if off < days {
			boundaries = append(boundaries, off)
		}
	}
	boundaries = append(boundaries, days)

	weekends := make([]bool, days)
	for d := 1; d <= days; d++ {
		wd := first.AddDate(0, 0, d-1).Weekday()
		weekends[d-1] = wd == time.Saturday || wd == time.Sunday
	}

	return Calendar{
		Period:         p,
		DaysInMonth:    days,
		WeekBoundaries: boundaries,
		Weekends:       weekends,
	}
}

func (c Calendar) WeekCount() int {
	return len(c.WeekBoundaries)
}

// WeekOf returns the week index of day (1-based), or -1 if the day is outside the month.
func (c Calendar) WeekOf(day int) int {
	if day < 1 || day > c.DaysInMonth {
		return -1
	}
	for w, b := range c.WeekBoundaries {
		if day <= b {
			return w
		}
	}
	return -1
}

func (c Calendar) WeekLength(w int) int {
	first, last := c.WeekRange(w)
	if first == 0 {
		return 0
	}
	return last - first + 1
}

// WeekRange returns the first and last day of week w, or zeros for an unknown index.
func (c Calendar) WeekRange(w int) (int, int) {
	if w < 0 || w >= len(c.WeekBoundaries) {
		return 0, 0
	}
	start := 1
	if w > 0 {
		start = c.WeekBoundaries[w-1] + 1
	}
	return start, c.WeekBoundaries[w]
}

func (c Calendar) IsWeekBoundary(day int) bool {
	w := c.WeekOf(day)
	return w >= 0 && c.WeekBoundaries[w] == day
}

func (c Calendar) IsWeekend(day int) bool {
	if day < 1 || day > len(c.Weekends) {
		return false
	}
	return c.Weekends[day-1]
}
