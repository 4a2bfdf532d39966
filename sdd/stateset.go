package sdd

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// stateIDComparator adapts utils.IntComparator to StateID the way gorgo's
// lr/tables.go adapts it to its own state-number type: convert, then
// delegate.
func stateIDComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(StateID)), int(b.(StateID)))
}

// StateSet is a symbolic (here: concretely enumerated) subset of the
// states of a Universe. Iteration order is always ascending StateID,
// which keeps diagnostics and tests deterministic.
type StateSet struct {
	u   *Universe
	ids *treeset.Set
}

// Empty returns ∅ over u.
func Empty(u *Universe) StateSet {
	return StateSet{u: u, ids: treeset.NewWith(stateIDComparator)}
}

// All returns ⊤ = U.
func All(u *Universe) StateSet {
	s := Empty(u)
	for _, id := range u.IDs() {
		s.ids.Add(id)
	}
	return s
}

// FromIDs builds a StateSet from an explicit list of members.
func FromIDs(u *Universe, ids ...StateID) StateSet {
	s := Empty(u)
	for _, id := range ids {
		s.ids.Add(id)
	}
	return s
}

// Universe returns the Universe this set was built against.
func (s StateSet) Universe() *Universe { return s.u }

// Len returns |S|.
func (s StateSet) Len() int { return s.ids.Size() }

// IsEmpty reports whether S = ∅.
func (s StateSet) IsEmpty() bool { return s.ids.Empty() }

// Contains reports whether id ∈ S.
func (s StateSet) Contains(id StateID) bool { return s.ids.Contains(id) }

// States returns the members of S in ascending order.
func (s StateSet) States() []StateID {
	vals := s.ids.Values()
	out := make([]StateID, len(vals))
	for i, v := range vals {
		out[i] = v.(StateID)
	}
	return out
}

func (s StateSet) checkSameUniverse(other StateSet) {
	if s.u != other.u {
		panic(ErrForeignUniverse)
	}
}

// Union returns S ∪ T.
func (s StateSet) Union(t StateSet) StateSet {
	s.checkSameUniverse(t)
	out := Empty(s.u)
	out.ids = treeset.NewWith(stateIDComparator, s.ids.Values()...)
	out.ids.Add(t.ids.Values()...)
	return out
}

// Intersect returns S ∩ T.
func (s StateSet) Intersect(t StateSet) StateSet {
	s.checkSameUniverse(t)
	out := Empty(s.u)
	for _, v := range s.ids.Values() {
		id := v.(StateID)
		if t.ids.Contains(id) {
			out.ids.Add(id)
		}
	}
	return out
}

// Difference returns S ∖ T.
func (s StateSet) Difference(t StateSet) StateSet {
	s.checkSameUniverse(t)
	out := Empty(s.u)
	for _, v := range s.ids.Values() {
		id := v.(StateID)
		if !t.ids.Contains(id) {
			out.ids.Add(id)
		}
	}
	return out
}

// Equal implements the set-equality comparison the fixpoint kernel
// convergence test in spec.md §4.2 relies on.
func (s StateSet) Equal(t StateSet) bool {
	s.checkSameUniverse(t)
	if s.ids.Size() != t.ids.Size() {
		return false
	}
	for _, v := range s.ids.Values() {
		if !t.ids.Contains(v.(StateID)) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of S.
func (s StateSet) Clone() StateSet {
	out := Empty(s.u)
	out.ids.Add(s.ids.Values()...)
	return out
}

func (s StateSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.States() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "s%d", id)
	}
	sb.WriteByte('}')
	return sb.String()
}
