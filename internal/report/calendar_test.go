package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, s string) Period {
	t.Helper()
	p, err := ParsePeriod(s)
	require.NoError(t, err)
	return p
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, time.February, p.Month)
	assert.Equal(t, "2024-02", p.String())
	assert.Equal(t, "202402", p.Compact())

	for _, bad := range []string{"", "2024", "2024-13", "2024-00", "24-02", "2024/02", "abcd-ef", "202402"} {
		_, err := ParsePeriod(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCompactPeriod(t *testing.T) {
	p, err := ParseCompactPeriod("202412")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2024, Month: time.December}, p)

	_, err = ParseCompactPeriod("2024-12")
	assert.Error(t, err)
}

func TestNewCalendar_LeapFebruary(t *testing.T) {
	cal := NewCalendar(mustPeriod(t, "2024-02"))

	assert.Equal(t, 29, cal.DaysInMonth)
	assert.Equal(t, []int{7, 14, 21, 28, 29}, cal.WeekBoundaries)
	assert.Equal(t, 1, cal.WeekLength(4))
}

func TestNewCalendar_ThirtyDays(t *testing.T) {
	cal := NewCalendar(mustPeriod(t, "2024-04"))

	assert.Equal(t, 30, cal.DaysInMonth)
	assert.Equal(t, []int{7, 14, 21, 28, 30}, cal.WeekBoundaries)
	assert.Equal(t, 2, cal.WeekLength(4))
}

func TestNewCalendar_PlainFebruaryHasFourWeeks(t *testing.T) {
	cal := NewCalendar(mustPeriod(t, "2023-02"))

	assert.Equal(t, 28, cal.DaysInMonth)
	assert.Equal(t, []int{7, 14, 21, 28}, cal.WeekBoundaries)
}

func TestNewCalendar_BoundaryProperties(t *testing.T) {
	for year := 2019; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			cal := NewCalendar(Period{Year: year, Month: m})
			b := cal.WeekBoundaries

			require.GreaterOrEqual(t, len(b), 4)
			require.LessOrEqual(t, len(b), 5)
			assert.Equal(t, cal.DaysInMonth, b[len(b)-1])
			for i := 1; i < len(b); i++ {
				assert.Less(t, b[i-1], b[i])
			}

			for d := 1; d <= cal.DaysInMonth; d++ {
				matches := 0
				for w := range b {
					if b[w] >= d && (w == 0 || b[w-1] < d) {
						matches++
						assert.Equal(t, w, cal.WeekOf(d))
					}
				}
				assert.Equal(t, 1, matches, "day %d of %d-%02d", d, year, m)
			}

			total := 0
			for w := range b {
				total += cal.WeekLength(w)
			}
			assert.Equal(t, cal.DaysInMonth, total)
		}
	}
}

func TestCalendar_Weekends(t *testing.T) {
	// 2024-06-01 is a Saturday.
	cal := NewCalendar(mustPeriod(t, "2024-06"))

	assert.True(t, cal.IsWeekend(1))
	assert.True(t, cal.IsWeekend(2))
	assert.False(t, cal.IsWeekend(3))
	assert.True(t, cal.IsWeekend(29))
	assert.False(t, cal.IsWeekend(0))
	assert.False(t, cal.IsWeekend(31))
}

func TestCalendar_WeekHelpers(t *testing.T) {
	cal := NewCalendar(mustPeriod(t, "2024-01"))

	first, last := cal.WeekRange(1)
	assert.Equal(t, 8, first)
	assert.Equal(t, 14, last)
	assert.True(t, cal.IsWeekBoundary(28))
	assert.True(t, cal.IsWeekBoundary(31))
	assert.False(t, cal.IsWeekBoundary(29))
	assert.Equal(t, -1, cal.WeekOf(32))
	assert.Equal(t, 0, cal.WeekLength(9))
}
