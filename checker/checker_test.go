package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/farctl/sdd"
)

func mustUniverse(t *testing.T, states []sdd.Assignment) *sdd.Universe {
	t.Helper()
	u, err := sdd.NewUniverse(states)
	require.NoError(t, err)
	return u
}

func idSet(t *testing.T, u *sdd.Universe, ids ...sdd.StateID) sdd.StateSet {
	t.Helper()
	return sdd.FromIDs(u, ids...)
}

func assertSameStates(t *testing.T, got sdd.StateSet, want sdd.StateSet) {
	t.Helper()
	require.True(t, got.Equal(want), "got %v, want %v", got, want)
}

// TestFlipFlop implements spec §8 scenario 1.
func TestFlipFlop(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{{"p": 0}, {"p": 1}})
	s0, _ := u.Lookup(sdd.Assignment{"p": 0})
	s1, _ := u.Lookup(sdd.Assignment{"p": 1})
	pred := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{
		s0: {s1},
		s1: {s0},
	})
	c := NewCTL(u, pred, nil)

	eg, err := c.Check("EG p")
	require.NoError(t, err)
	assertSameStates(t, eg, idSet(t, u, s1))

	agef, err := c.Check("AG(EF p)")
	require.NoError(t, err)
	assertSameStates(t, agef, sdd.All(u))

	ax, err := c.Check("AX p")
	require.NoError(t, err)
	assertSameStates(t, ax, idSet(t, u, s0))
}

// TestDeadlockInclusion implements spec §8 scenario 2.
func TestDeadlockInclusion(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{
		{"p": 0, "idx": 0},
		{"p": 0, "idx": 1},
		{"p": 1, "idx": 0},
	})
	s2, _ := u.Lookup(sdd.Assignment{"p": 1, "idx": 0})
	s1, _ := u.Lookup(sdd.Assignment{"p": 0, "idx": 1})
	s0, _ := u.Lookup(sdd.Assignment{"p": 0, "idx": 0})
	pred := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{
		s0: {s1},
		s1: {s2},
		// s2 has no successors: deadlocked.
	})
	c := NewCTL(u, pred, nil)

	eg, err := c.Check("EG p")
	require.NoError(t, err)
	assertSameStates(t, eg, idSet(t, u, s2))

	axFalse, err := c.Check("AX false")
	require.NoError(t, err)
	assertSameStates(t, axFalse, idSet(t, u, s2))
}

// TestUntilChain implements spec §8 scenario 3.
func TestUntilChain(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{
		{"hi": 0, "lo": 0}, {"hi": 0, "lo": 1}, {"hi": 1, "lo": 0}, {"hi": 1, "lo": 1},
	})
	ids := make([]sdd.StateID, 4)
	for i := 0; i < 4; i++ {
		ids[i], _ = u.Lookup(sdd.Assignment{"hi": i / 2, "lo": i % 2})
	}
	pred := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{
		ids[0]: {ids[1]},
		ids[1]: {ids[2]},
		ids[2]: {ids[3]},
	})
	resolver := func(u *sdd.Universe, token string) (sdd.StateSet, error) {
		switch token {
		case "p":
			return idSet(t, u, ids[0], ids[1], ids[2]), nil
		case "q":
			return idSet(t, u, ids[3]), nil
		case "r":
			return sdd.Empty(u), nil
		}
		return defaultAtomResolver(u, token)
	}
	c := NewCTL(u, pred, resolver)

	epuq, err := c.Check("E[p U q]")
	require.NoError(t, err)
	assertSameStates(t, epuq, idSet(t, u, ids[0], ids[1], ids[2], ids[3]))

	epur, err := c.Check("E[p U r]")
	require.NoError(t, err)
	assertSameStates(t, epur, sdd.Empty(u))
}

func twoActionUniverse(t *testing.T) (*sdd.Universe, *sdd.ActionTable, sdd.StateID, sdd.StateID, sdd.StateID) {
	t.Helper()
	u := mustUniverse(t, []sdd.Assignment{{"hi": 0, "lo": 0}, {"hi": 0, "lo": 1}, {"hi": 1, "lo": 0}})
	s0, _ := u.Lookup(sdd.Assignment{"hi": 0, "lo": 0})
	s1, _ := u.Lookup(sdd.Assignment{"hi": 0, "lo": 1})
	s2, _ := u.Lookup(sdd.Assignment{"hi": 1, "lo": 0})
	relA := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}})
	relB := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s2}})
	at, err := sdd.NewActionTable(map[*sdd.Relation][]string{
		relA: {"a"},
		relB: {"b"},
	}, sdd.TauLabel)
	require.NoError(t, err)
	return u, at, s0, s1, s2
}

// TestActionRestriction implements spec §8 scenario 4.
func TestActionRestriction(t *testing.T) {
	u, at, s0, s1, _ := twoActionUniverse(t)
	resolver := func(u *sdd.Universe, token string) (sdd.StateSet, error) {
		if token == "atom" {
			return idSet(t, u, s1), nil
		}
		return defaultAtomResolver(u, token)
	}
	c, err := NewARCTL(u, at, resolver)
	require.NoError(t, err)

	exA, err := c.Check("EX{actions: a} atom")
	require.NoError(t, err)
	assertSameStates(t, exA, idSet(t, u, s0))

	exB, err := c.Check("EX{actions: b} atom")
	require.NoError(t, err)
	assertSameStates(t, exB, sdd.Empty(u))
}

func twoStateCycle(t *testing.T, withC bool) (*sdd.Universe, *sdd.ActionTable) {
	t.Helper()
	u := mustUniverse(t, []sdd.Assignment{{"idx": 0}, {"idx": 1}})
	s0, _ := u.Lookup(sdd.Assignment{"idx": 0})
	s1, _ := u.Lookup(sdd.Assignment{"idx": 1})
	rules := map[*sdd.Relation][]string{}
	if withC {
		relC := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}, s1: {s0}})
		rules[relC] = []string{"c"}
	} else {
		relOther := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}, s1: {s0}})
		rules[relOther] = []string{"other"}
	}
	at, err := sdd.NewActionTable(rules, sdd.TauLabel)
	require.NoError(t, err)
	return u, at
}

// TestStrongFairness implements spec §8 scenario 5.
func TestStrongFairness(t *testing.T) {
	u, at := twoStateCycle(t, true)
	c, err := NewFairARCTL(u, at, nil, NopSink{})
	require.NoError(t, err)

	res, err := c.Check("EG{actions: true; sfair: true THEN @c} true")
	require.NoError(t, err)
	assertSameStates(t, res, sdd.All(u))
}

// TestStrongFairnessUnknownLabel checks the fatal path taken when a
// fairness event names a label absent from the action table entirely
// (evalActionOnRule rejects it before fairness ever runs) — a real
// error case, but not spec §8 scenario 5's "EG_fair collapses to ∅
// plus a warning" case; see TestStrongFairnessEmpty for that one.
func TestStrongFairnessUnknownLabel(t *testing.T) {
	u, at := twoStateCycle(t, false)
	c, err := NewFairARCTL(u, at, nil, NopSink{})
	require.NoError(t, err)

	_, err = c.Check("EG{actions: true; sfair: true THEN @c} true")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownLabel)
}

// capturingSink records every diagnostic it receives, so a test can
// assert on the warnings a Checker raised instead of only its result.
type capturingSink struct {
	diags []Diagnostic
}

func (s *capturingSink) Warn(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// unsatisfiableFairnessUniverse builds the two-state "c"-labelled cycle
// of twoStateCycle(t, true), plus a state variable "q" that is false in
// every state, so a strong-fairness demand for "q infinitely often" can
// never be met by any path.
func unsatisfiableFairnessUniverse(t *testing.T) (*sdd.Universe, *sdd.ActionTable) {
	t.Helper()
	u := mustUniverse(t, []sdd.Assignment{{"idx": 0, "q": 0}, {"idx": 1, "q": 0}})
	s0, _ := u.Lookup(sdd.Assignment{"idx": 0, "q": 0})
	s1, _ := u.Lookup(sdd.Assignment{"idx": 1, "q": 0})
	relC := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}, s1: {s0}})
	at, err := sdd.NewActionTable(map[*sdd.Relation][]string{relC: {"c"}}, sdd.TauLabel)
	require.NoError(t, err)
	return u, at
}

// TestStrongFairnessEmpty is spec §8 scenario 5's actual negative half:
// a present, well-formed fairness condition that no path can ever
// satisfy (here, "q infinitely often" when q never holds) makes
// EG_fair(⊤) collapse to ∅ and raises DiagEmptyFairUniverse, rather
// than failing the Check call.
func TestStrongFairnessEmpty(t *testing.T) {
	u, at := unsatisfiableFairnessUniverse(t)
	sink := &capturingSink{}
	c, err := NewFairARCTL(u, at, nil, sink)
	require.NoError(t, err)

	res, err := c.Check("EG{actions: true; sfair: true THEN q} true")
	require.NoError(t, err)
	require.True(t, res.IsEmpty())

	require.Len(t, sink.diags, 1)
	require.Equal(t, DiagEmptyFairUniverse, sink.diags[0].Kind)
}

// TestStrongFairnessRejectsActionCondition checks the §4.5 validity
// constraint: a strong-fairness condition must not itself be an
// action-event.
func TestStrongFairnessRejectsActionCondition(t *testing.T) {
	u, at := twoStateCycle(t, true)
	c, err := NewFairARCTL(u, at, nil, NopSink{})
	require.NoError(t, err)

	_, err = c.Check("EG{actions: true; sfair: @c THEN @c} true")
	require.ErrorIs(t, err, ErrBadFairness)
}

// TestInvisibleAction implements spec §8 scenario 6: a rule carrying
// the tau label is selected by every action predicate, including one
// that explicitly excludes every other label.
func TestInvisibleAction(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{{"hi": 0, "lo": 0}, {"hi": 0, "lo": 1}, {"hi": 1, "lo": 0}})
	s0, _ := u.Lookup(sdd.Assignment{"hi": 0, "lo": 0})
	s1, _ := u.Lookup(sdd.Assignment{"hi": 0, "lo": 1})
	s2, _ := u.Lookup(sdd.Assignment{"hi": 1, "lo": 0})
	relA := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}})
	relTau := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s2}})
	at, err := sdd.NewActionTable(map[*sdd.Relation][]string{
		relA:   {"a"},
		relTau: {sdd.TauLabel},
	}, sdd.TauLabel)
	require.NoError(t, err)

	c, err := NewARCTL(u, at, nil)
	require.NoError(t, err)

	res, err := c.Check("EX{actions: !a} true")
	require.NoError(t, err)
	require.True(t, res.Contains(s0), "tau-carrying rule must remain selected under !a")
}

// TestPlainCTLRejectsActionEvent checks that NewCTL's CTL() sub-view
// rejects a formula carrying an action decoration.
func TestPlainCTLRejectsActionEvent(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{{"p": 0}, {"p": 1}})
	s0, _ := u.Lookup(sdd.Assignment{"p": 0})
	s1, _ := u.Lookup(sdd.Assignment{"p": 1})
	pred := sdd.RelationFromSuccessors(u, map[sdd.StateID][]sdd.StateID{s0: {s1}, s1: {s0}})
	c := NewCTL(u, pred, nil)

	_, err := c.Check("EX{actions: a} p")
	require.Error(t, err)
}

// TestEmptyActionTableRejected checks the ErrEmptyActions constructor guard.
func TestEmptyActionTableRejected(t *testing.T) {
	u := mustUniverse(t, []sdd.Assignment{{"p": 0}})
	at := &sdd.ActionTable{Rules: map[*sdd.Relation][]string{}}
	_, err := NewARCTL(u, at, nil)
	require.ErrorIs(t, err, ErrEmptyActions)
	_, err = NewFairARCTL(u, at, nil, nil)
	require.ErrorIs(t, err, ErrEmptyActions)
}
