package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseState_ToggleRoundTrip(t *testing.T) {
	s := NewCollapseState(2)

	once := s.Toggle(0)
	assert.True(t, once.IsCollapsed(0))
	assert.False(t, s.IsCollapsed(0), "toggle must not mutate the original")

	twice := once.Toggle(0)
	assert.Equal(t, s.Indices(), twice.Indices())

	off := s.Toggle(2).Toggle(2)
	assert.Equal(t, []int{2}, off.Indices())
}

func TestCollapseState_NegativeIndexIgnored(t *testing.T) {
	s := NewCollapseState(-1).Toggle(-3)
	assert.Equal(t, 0, s.Len())
}

func TestCollapseState_EncodeDecode(t *testing.T) {
	s := NewCollapseState(4, 0, 2)
	assert.Equal(t, "[0,2,4]", s.Encode())
	assert.Equal(t, []int{0, 2, 4}, DecodeCollapseState(s.Encode()).Indices())
	assert.Equal(t, "[]", NewCollapseState().Encode())
}

func TestDecodeCollapseState_CorruptFallsBackToEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "{}", "not json", `["a"]`, "[1.5]", `{"0":true}`} {
		s := DecodeCollapseState(raw)
		assert.Equal(t, 0, s.Len(), raw)
	}
}

func TestCollapseState_StaleIndexIsInert(t *testing.T) {
	// Week 4 does not exist in a 28-day month; the column plan just ignores it.
	cal := NewCalendar(Period{Year: 2023, Month: 2})
	columns := PlanColumns(cal, NewCollapseState(4))

	assert.Len(t, columns, cal.DaysInMonth+cal.WeekCount())
}
