package checker

import (
	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// Logic distinguishes which of the three unified logics a Checker was
// constructed for, purely to pick which Parsed sub-view Check() uses
// when handed a formula string.
type Logic int

const (
	LogicCTL Logic = iota
	LogicARCTL
	LogicFairARCTL
)

// Checker is the public entry point of spec §6: immutable except for
// the atom- and action-predicate caches it owns.
type Checker struct {
	logic Logic
	ce    *CoreEvaluator
	u     *sdd.Universe
	at    *sdd.ActionTable
}

// NewCTL constructs a plain-CTL checker over (U, pred), per spec §6's
// new_ctl. atomResolver may be nil to use the default
// sdd.FromAssignment-backed resolver.
func NewCTL(u *sdd.Universe, pred *sdd.Relation, atomResolver AtomResolver) *Checker {
	return &Checker{logic: LogicCTL, ce: NewCoreEvaluator(u, pred, atomResolver), u: u}
}

// NewARCTL constructs an ARCTL-only checker: a path quantifier lacking
// an actions decoration uses the union of every rule in at as its
// ambient pred, and a fairness decoration on any node is rejected with
// ErrBadFairness. Not required by spec §6's unified new_farctl, but a
// convenience entry point for callers that never need fairness and
// want to skip the heavier EG_fair machinery NewFairARCTL always runs.
func NewARCTL(u *sdd.Universe, at *sdd.ActionTable, atomResolver AtomResolver) (*Checker, error) {
	if len(at.Rules) == 0 {
		return nil, wrapErr(ErrEmptyActions, "action table has no rules")
	}
	cache := newActionCache()
	ambient, err := cache.compile(trueAction(), u, at)
	if err != nil {
		return nil, err
	}
	ce := NewCoreEvaluator(u, ambient, atomResolver)
	ce.PathOp = newARCTLPathOp(u, at, cache)
	return &Checker{logic: LogicARCTL, ce: ce, u: u, at: at}, nil
}

// NewFairARCTL constructs the full Fair (AR)CTL checker of spec §6's
// new_farctl: each path quantifier may carry actions and/or ufair/
// wfair/sfair decorations; a quantifier lacking both falls through to
// plain CTL. sink receives non-fatal diagnostics (nil installs the
// default PtermSink).
func NewFairARCTL(u *sdd.Universe, at *sdd.ActionTable, atomResolver AtomResolver, sink DiagnosticSink) (*Checker, error) {
	if len(at.Rules) == 0 {
		return nil, wrapErr(ErrEmptyActions, "action table has no rules")
	}
	if sink == nil {
		sink = PtermSink{}
	}
	cache := newActionCache()
	ambient, err := cache.compile(trueAction(), u, at)
	if err != nil {
		return nil, err
	}
	ce := NewCoreEvaluator(u, ambient, atomResolver)
	ce.PathOp = newFairPathOp(u, at, cache, sink)
	return &Checker{logic: LogicFairARCTL, ce: ce, u: u, at: at}, nil
}

// Check evaluates f — a formula string or an already-parsed *formula.Phi
// — and returns the StateSet satisfying it, per spec §6.
func (c *Checker) Check(f interface{}) (sdd.StateSet, error) {
	root, err := c.resolveFormula(f)
	if err != nil {
		return sdd.StateSet{}, err
	}
	return c.ce.Eval(root)
}

func (c *Checker) resolveFormula(f interface{}) (*formula.Phi, error) {
	switch v := f.(type) {
	case *formula.Phi:
		return v, nil
	case string:
		parsed, err := formula.Parse(v)
		if err != nil {
			return nil, err
		}
		if c.logic == LogicCTL {
			root, err := parsed.CTL()
			if err != nil {
				return nil, wrapErr(ErrBadKind, "%v", err)
			}
			return root, nil
		}
		return parsed.ARCTL()
	default:
		return nil, wrapErr(ErrBadType, "formula must be a string or *formula.Phi, got %T", f)
	}
}
