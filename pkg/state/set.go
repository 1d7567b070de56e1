package state

import "sort"

// Set is a set of identifiers.
type Set map[string]bool

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s Set) Add(id string) bool {
	if s[id] {
		return false
	}
	s[id] = true
	return true
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	return s[id]
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in sorted order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
