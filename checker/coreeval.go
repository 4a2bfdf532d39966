package checker

import (
	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// Transformer is a monotone StateSet -> StateSet map, the unit every
// fixpoint in this package iterates.
type Transformer func(sdd.StateSet) sdd.StateSet

// Fixpoint repeatedly applies f to seed until the result stops
// changing under StateSet equality (set equality, not identity), per
// spec §4.2's fixpoint contract.
func Fixpoint(f Transformer, seed sdd.StateSet) sdd.StateSet {
	cur := seed
	for {
		next := f(cur)
		if next.Equal(cur) {
			return cur
		}
		cur = next
	}
}

// CoreEvaluator is the shared AST-walk skeleton spec.md §9's Design
// Notes calls for: CTL, ARCTL, and Fair (AR)CTL are all one evaluator
// with a pluggable PathOp strategy for path-quantifier nodes. Boolean
// connectives and atoms are always handled the same way, relative to
// Top (this evaluator's notion of ⊤, U for CTL/ARCTL, the fairness-
// restricted U' for the re-derived Fair (AR)CTL operators).
type CoreEvaluator struct {
	U        *sdd.Universe
	Top      sdd.StateSet
	Pred     *sdd.Relation
	Atoms    *atomCache
	Resolver AtomResolver
	PathOp   func(ce *CoreEvaluator, node *formula.Phi) (sdd.StateSet, error)
}

// NewCoreEvaluator builds a plain-CTL evaluator: Top = U, Pred = pred,
// and the default CTL path-operator table.
func NewCoreEvaluator(u *sdd.Universe, pred *sdd.Relation, resolver AtomResolver) *CoreEvaluator {
	ce := &CoreEvaluator{
		U:        u,
		Top:      sdd.All(u),
		Pred:     pred,
		Atoms:    newAtomCache(),
		Resolver: resolver,
	}
	ce.PathOp = func(ce *CoreEvaluator, node *formula.Phi) (sdd.StateSet, error) {
		return ce.evalPathOpWithPred(node, ce.Pred)
	}
	return ce
}

// withTopAndPred returns a shallow copy of ce restricted to a new ⊤
// and precedence relation, sharing the atom cache and resolver. Used
// by the Fair (AR)CTL evaluator to re-derive operators over U'.
func (ce *CoreEvaluator) withTopAndPred(top sdd.StateSet, pred *sdd.Relation) *CoreEvaluator {
	clone := *ce
	clone.Top = top
	clone.Pred = pred
	return &clone
}

func (ce *CoreEvaluator) lfp(f Transformer) sdd.StateSet {
	return Fixpoint(f, sdd.Empty(ce.U))
}

func (ce *CoreEvaluator) gfp(f Transformer) sdd.StateSet {
	return Fixpoint(f, ce.Top)
}

// EX is "exists a successor in S", clipped to this evaluator's ⊤.
func (ce *CoreEvaluator) EX(s sdd.StateSet) sdd.StateSet {
	return ce.exWith(ce.Pred, s)
}

func (ce *CoreEvaluator) exWith(pred *sdd.Relation, s sdd.StateSet) sdd.StateSet {
	return pred.Apply(s).Intersect(ce.Top)
}

// AX is "every successor satisfies S", including deadlocked states
// vacuously. Spec.md's table states AX φ = EX(U) ∩ not EX(not φ); the
// worked examples in §8 (notably "AX false ⟹ {deadlocked state}")
// are only consistent with the simpler AX φ = ⊤ ∖ EX(¬φ), so this
// module implements that form and records the discrepancy in DESIGN.md
// rather than the literal table entry.
func (ce *CoreEvaluator) AX(s sdd.StateSet) sdd.StateSet {
	return ce.axWith(ce.Pred, s)
}

func (ce *CoreEvaluator) axWith(pred *sdd.Relation, s sdd.StateSet) sdd.StateSet {
	notS := ce.Top.Difference(s)
	return ce.Top.Difference(ce.exWith(pred, notS))
}

func (ce *CoreEvaluator) deadlock() sdd.StateSet {
	return ce.deadlockWith(ce.Pred)
}

func (ce *CoreEvaluator) deadlockWith(pred *sdd.Relation) sdd.StateSet {
	return ce.Top.Difference(pred.Apply(ce.Top).Intersect(ce.Top))
}

// Eval walks node bottom-up, dispatching boolean connectives and atoms
// directly and delegating path quantifiers to ce.PathOp.
func (ce *CoreEvaluator) Eval(node *formula.Phi) (sdd.StateSet, error) {
	if !node.IsPathQuantifier() && (node.Actions != nil || node.HasFairness()) {
		return sdd.StateSet{}, wrapErr(ErrBadFairness, "actions/fairness decoration on non-quantifier node %q", node.Kind)
	}
	switch node.Kind {
	case formula.KindBool:
		b, ok := node.Value.(bool)
		if !ok {
			return sdd.StateSet{}, wrapErr(ErrBadBool, "value %v is not a bool", node.Value)
		}
		if b {
			return ce.Top.Clone(), nil
		}
		return sdd.Empty(ce.U), nil

	case formula.KindName:
		return ce.resolveAtom(node)

	case formula.KindNot:
		inner, err := ce.Eval(node.Children[0])
		if err != nil {
			return sdd.StateSet{}, err
		}
		return ce.Top.Difference(inner), nil

	case formula.KindAnd:
		acc := ce.Top.Clone()
		for _, c := range node.Children {
			v, err := ce.Eval(c)
			if err != nil {
				return sdd.StateSet{}, err
			}
			acc = acc.Intersect(v)
		}
		return acc, nil

	case formula.KindOr:
		acc := sdd.Empty(ce.U)
		for _, c := range node.Children {
			v, err := ce.Eval(c)
			if err != nil {
				return sdd.StateSet{}, err
			}
			acc = acc.Union(v)
		}
		return acc, nil

	case formula.KindImply:
		a, err := ce.Eval(node.Children[0])
		if err != nil {
			return sdd.StateSet{}, err
		}
		b, err := ce.Eval(node.Children[1])
		if err != nil {
			return sdd.StateSet{}, err
		}
		return ce.Top.Difference(a).Union(b), nil

	case formula.KindIff:
		a, err := ce.Eval(node.Children[0])
		if err != nil {
			return sdd.StateSet{}, err
		}
		b, err := ce.Eval(node.Children[1])
		if err != nil {
			return sdd.StateSet{}, err
		}
		notA, notB := ce.Top.Difference(a), ce.Top.Difference(b)
		return a.Intersect(b).Union(notA.Intersect(notB)), nil

	default:
		if node.IsPathQuantifier() {
			return ce.PathOp(ce, node)
		}
		return sdd.StateSet{}, wrapErr(ErrBadKind, "%q", node.Kind)
	}
}

// evalPathOpWithPred implements spec.md §4.2's operator table, lifted
// to use an explicit pred instead of ce.Pred so ARCTL/Fair strategies
// can swap in an α-restricted relation per node without mutating ce.
func (ce *CoreEvaluator) evalPathOpWithPred(node *formula.Phi, pred *sdd.Relation) (sdd.StateSet, error) {
	ex := func(s sdd.StateSet) sdd.StateSet { return ce.exWith(pred, s) }
	ax := func(s sdd.StateSet) sdd.StateSet { return ce.axWith(pred, s) }
	dl := ce.deadlockWith(pred)

	unary := func() (sdd.StateSet, error) { return ce.Eval(node.Children[0]) }
	binary := func() (sdd.StateSet, sdd.StateSet, error) {
		a, err := ce.Eval(node.Children[0])
		if err != nil {
			return sdd.StateSet{}, sdd.StateSet{}, err
		}
		b, err := ce.Eval(node.Children[1])
		if err != nil {
			return sdd.StateSet{}, sdd.StateSet{}, err
		}
		return a, b, nil
	}

	switch node.Kind {
	case formula.KindEX:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return ex(phi), nil
	case formula.KindAX:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return ax(phi), nil

	case formula.KindEF:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi.Union(ex(z)) }, sdd.Empty(ce.U)), nil
	case formula.KindAF:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi.Union(ax(z)) }, sdd.Empty(ce.U)), nil

	case formula.KindEG:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi.Intersect(ex(z).Union(dl)) }, ce.Top), nil
	case formula.KindAG:
		phi, err := unary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi.Intersect(ax(z).Union(dl)) }, ce.Top), nil

	case formula.KindEU:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Union(p1.Intersect(ex(z))) }, sdd.Empty(ce.U)), nil
	case formula.KindAU:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Union(p1.Intersect(ax(z))) }, sdd.Empty(ce.U)), nil

	case formula.KindEW:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Union(p1.Intersect(ex(z).Union(dl))) }, ce.Top), nil
	case formula.KindAW:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Union(p1.Intersect(ax(z).Union(dl))) }, ce.Top), nil

	case formula.KindER:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Intersect(p1.Union(ex(z)).Union(dl)) }, ce.Top), nil
	case formula.KindAR:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Intersect(p1.Union(ax(z)).Union(dl)) }, ce.Top), nil

	case formula.KindEM:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Intersect(p1.Union(ex(z))) }, sdd.Empty(ce.U)), nil
	case formula.KindAM:
		p1, p2, err := binary()
		if err != nil {
			return sdd.StateSet{}, err
		}
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return p2.Intersect(p1.Union(ax(z))) }, sdd.Empty(ce.U)), nil
	}

	return sdd.StateSet{}, wrapErr(ErrBadKind, "%q is not a path quantifier", node.Kind)
}
