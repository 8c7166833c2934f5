package isoform

import (
	"encoding/json"
	"maps"
	"slices"
)

// IDSet is a set of block or region IDs. The zero value is not usable; use
// IDSet{} or make(IDSet).
type IDSet map[int]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into s.
func (s IDSet) Add(id int) { s[id] = struct{}{} }

// Has reports whether id is in s.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in s.
func (s IDSet) Len() int { return len(s) }

// Sorted returns the IDs in ascending order.
func (s IDSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}

// SymmetricDifference returns how many IDs are in exactly one of s and o.
func (s IDSet) SymmetricDifference(o IDSet) int {
	n := 0
	for id := range s {
		if !o.Has(id) {
			n++
		}
	}
	for id := range o {
		if !s.Has(id) {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the set as a sorted array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	ids := s.Sorted()
	if ids == nil {
		ids = []int{}
	}
	return json.Marshal(ids)
}

// UnmarshalJSON decodes an array of IDs.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
