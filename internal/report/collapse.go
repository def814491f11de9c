package report

import (
	"encoding/json"
	"sort"
)

// CollapseState is the set of week indices rendered as a single total column.
// Values are immutable; Toggle returns a new state.
type CollapseState struct {
	weeks map[int]struct{}
}

func NewCollapseState(indices ...int) CollapseState {
	weeks := make(map[int]struct{}, len(indices))
	for _, w := range indices {
		if w >= 0 {
			weeks[w] = struct{}{}
		}
	}
	return CollapseState{weeks: weeks}
}

func (s CollapseState) IsCollapsed(w int) bool {
	_, ok := s.weeks[w]
	return ok
}

func (s CollapseState) Toggle(w int) CollapseState {
	if w < 0 {
		return s
	}

	next := make(map[int]struct{}, len(s.weeks)+1)
	for k := range s.weeks {
		next[k] = struct{}{}
	}
	if _, ok := next[w]; ok {
		delete(next, w)
	} else {
		next[w] = struct{}{}
	}

	return CollapseState{weeks: next}
}

func (s CollapseState) Len() int {
	return len(s.weeks)
}

// Indices returns the collapsed weeks in ascending order.
func (s CollapseState) Indices() []int {
	out := make([]int, 0, len(s.weeks))
	for w := range s.weeks {
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}

func (s CollapseState) Encode() string {
	b, err := json.Marshal(s.Indices())
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeCollapseState never fails: anything but a JSON array of integers yields an empty set.
func DecodeCollapseState(raw string) CollapseState {
	if raw == "" {
		return NewCollapseState()
	}

	var indices []int
	if err := json.Unmarshal([]byte(raw), &indices); err != nil {
		return NewCollapseState()
	}

	return NewCollapseState(indices...)
}
