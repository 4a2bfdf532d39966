package checker

import (
	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// fairStrategy implements spec §4.5. Every path-quantifier node either
// falls through to plain CTL (no actions, no fairness — the resolved
// open question of SPEC_FULL.md §9) or is evaluated by first computing
// the α-fair restricted universe U' = EG_fair(⊤), then re-deriving the
// requested operator on (U', pred_α).
type fairStrategy struct {
	u     *sdd.Universe
	at    *sdd.ActionTable
	cache *actionCache
	sink  DiagnosticSink
}

func newFairPathOp(u *sdd.Universe, at *sdd.ActionTable, cache *actionCache, sink DiagnosticSink) func(*CoreEvaluator, *formula.Phi) (sdd.StateSet, error) {
	s := &fairStrategy{u: u, at: at, cache: cache, sink: sink}
	return s.pathOp
}

// fairMachinery bundles the per-node, per-evaluator closures that
// implement the τ_u/τ_w/τ_s families and the EG_fair construction of
// spec §4.5, scoped to one CoreEvaluator (its Top and its U scope).
type fairMachinery struct {
	ce               *CoreEvaluator
	ex               Transformer
	tauU, tauW, tauS Transformer
}

func (m *fairMachinery) euRaw(phi1, phi2 sdd.StateSet) sdd.StateSet {
	return Fixpoint(func(z sdd.StateSet) sdd.StateSet {
		return phi2.Union(phi1.Intersect(m.ex(z)))
	}, sdd.Empty(m.ce.U))
}

func (m *fairMachinery) egFair(phi sdd.StateSet) sdd.StateSet {
	inner := Fixpoint(func(z sdd.StateSet) sdd.StateSet {
		return phi.Intersect(m.tauU(z)).Intersect(m.tauW(z)).Intersect(m.tauS(z))
	}, m.ce.Top)
	return m.euRaw(phi, inner)
}

// buildExEvent realizes EXevent(α, e) of spec §4.5, precomputing the
// event's static part (the compiled α∧β relation for an action-event,
// or the evaluated StateSet for a state-event) once, since neither
// depends on the fixpoint variable Z.
func buildExEvent(ce *CoreEvaluator, alpha *formula.Phi, e *formula.Phi, ex Transformer, dl sdd.StateSet, cache *actionCache, u *sdd.Universe, at *sdd.ActionTable) (Transformer, error) {
	if e.IsActionEvent() {
		rel, err := cache.compile(andAction(alpha, e.Children[0]), u, at)
		if err != nil {
			return nil, err
		}
		return func(z sdd.StateSet) sdd.StateSet { return rel.Apply(z).Intersect(ce.Top) }, nil
	}
	ev, err := ce.Eval(e)
	if err != nil {
		return nil, err
	}
	return func(z sdd.StateSet) sdd.StateSet { return ev.Intersect(ex(z).Union(dl)) }, nil
}

// buildExNotEvent realizes EXnotevent(α, e).
func buildExNotEvent(ce *CoreEvaluator, alpha *formula.Phi, e *formula.Phi, ex Transformer, dl sdd.StateSet, cache *actionCache, u *sdd.Universe, at *sdd.ActionTable) (Transformer, error) {
	if e.IsActionEvent() {
		rel, err := cache.compile(andAction(alpha, notAction(e.Children[0])), u, at)
		if err != nil {
			return nil, err
		}
		return func(z sdd.StateSet) sdd.StateSet { return rel.Apply(z).Intersect(ce.Top).Union(dl) }, nil
	}
	ev, err := ce.Eval(e)
	if err != nil {
		return nil, err
	}
	notEv := ce.Top.Difference(ev)
	return func(z sdd.StateSet) sdd.StateSet { return notEv.Intersect(ex(z).Union(dl)) }, nil
}

type eventPair struct{ not, then Transformer }

func buildFairMachinery(ce *CoreEvaluator, alpha *formula.Phi, predA *sdd.Relation, node *formula.Phi, cache *actionCache, u *sdd.Universe, at *sdd.ActionTable) (*fairMachinery, error) {
	ex := func(z sdd.StateSet) sdd.StateSet { return predA.Apply(z).Intersect(ce.Top) }
	dl := ce.Top.Difference(ex(ce.Top))

	ufairThens := make([]Transformer, len(node.UFair))
	for i, f := range node.UFair {
		t, err := buildExEvent(ce, alpha, f.Then, ex, dl, cache, u, at)
		if err != nil {
			return nil, err
		}
		ufairThens[i] = t
	}

	buildPair := func(f formula.FairnessRecord) (eventPair, error) {
		notT, err := buildExNotEvent(ce, alpha, f.Condition, ex, dl, cache, u, at)
		if err != nil {
			return eventPair{}, err
		}
		thenT, err := buildExEvent(ce, alpha, f.Then, ex, dl, cache, u, at)
		if err != nil {
			return eventPair{}, err
		}
		return eventPair{not: notT, then: thenT}, nil
	}

	wfairPairs := make([]eventPair, len(node.WFair))
	for i, f := range node.WFair {
		p, err := buildPair(f)
		if err != nil {
			return nil, err
		}
		wfairPairs[i] = p
	}

	sfairPairs := make([]eventPair, len(node.SFair))
	for i, f := range node.SFair {
		p, err := buildPair(f)
		if err != nil {
			return nil, err
		}
		sfairPairs[i] = p
	}

	m := &fairMachinery{ce: ce, ex: ex}
	m.tauU = func(z sdd.StateSet) sdd.StateSet {
		acc := ce.Top.Clone()
		for _, t := range ufairThens {
			acc = acc.Intersect(m.euRaw(z, z.Intersect(t(z))))
		}
		return acc
	}
	m.tauW = func(z sdd.StateSet) sdd.StateSet {
		acc := ce.Top.Clone()
		for _, p := range wfairPairs {
			acc = acc.Intersect(m.euRaw(z, z.Intersect(p.not(z).Union(p.then(z)))))
		}
		return acc
	}
	m.tauS = func(z sdd.StateSet) sdd.StateSet {
		acc := ce.Top.Clone()
		for _, p := range sfairPairs {
			term := p.not(z).Union(m.euRaw(z, z.Intersect(p.then(z))))
			acc = acc.Intersect(term)
		}
		return acc
	}
	return m, nil
}

func (s *fairStrategy) pathOp(ce *CoreEvaluator, node *formula.Phi) (sdd.StateSet, error) {
	if node.Actions == nil && !node.HasFairness() {
		return ce.evalPathOpWithPred(node, ce.Pred)
	}
	for _, f := range node.SFair {
		if f.Condition.IsActionEvent() {
			return sdd.StateSet{}, wrapErr(ErrBadFairness, "strong fairness condition must be a state event, not an action event")
		}
	}

	alpha := node.Actions
	if alpha == nil {
		alpha = trueAction()
	}
	predA := ce.Pred
	if node.Actions != nil {
		r, err := s.cache.compile(node.Actions, s.u, s.at)
		if err != nil {
			return sdd.StateSet{}, err
		}
		predA = r
	}

	outer, err := buildFairMachinery(ce, alpha, predA, node, s.cache, s.u, s.at)
	if err != nil {
		return sdd.StateSet{}, err
	}
	uPrime := outer.egFair(ce.Top)
	if uPrime.IsEmpty() && s.sink != nil {
		s.sink.Warn(Diagnostic{
			Kind:    DiagEmptyFairUniverse,
			Actions: renderAction(alpha),
			UFair:   renderFairness(node.UFair),
			WFair:   renderFairness(node.WFair),
			SFair:   renderFairness(node.SFair),
		})
	}

	inner := ce.withTopAndPred(uPrime, predA)
	m, err := buildFairMachinery(inner, alpha, predA, node, s.cache, s.u, s.at)
	if err != nil {
		return sdd.StateSet{}, err
	}

	ef := func(phi sdd.StateSet) sdd.StateSet {
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi.Union(inner.EX(z)) }, sdd.Empty(inner.U))
	}
	eu := func(phi1, phi2 sdd.StateSet) sdd.StateSet {
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi2.Union(phi1.Intersect(inner.EX(z))) }, sdd.Empty(inner.U))
	}
	em := func(phi1, phi2 sdd.StateSet) sdd.StateSet {
		return Fixpoint(func(z sdd.StateSet) sdd.StateSet { return phi2.Intersect(phi1.Union(inner.EX(z))) }, sdd.Empty(inner.U))
	}
	ewFair := func(x, y sdd.StateSet) sdd.StateSet { return eu(x, y).Union(m.egFair(x)) }
	erFair := func(x, y sdd.StateSet) sdd.StateSet { return ewFair(y, x.Intersect(y)) }
	awFair := func(x, y sdd.StateSet) sdd.StateSet {
		notX, notY := inner.Top.Difference(x), inner.Top.Difference(y)
		return inner.Top.Difference(eu(notY, notX.Intersect(notY)))
	}
	auFair := func(x, y sdd.StateSet) sdd.StateSet {
		notX, notY := inner.Top.Difference(x), inner.Top.Difference(y)
		euTerm := eu(notY, notX.Intersect(notY))
		egTerm := m.egFair(notY)
		return inner.Top.Difference(euTerm).Intersect(inner.Top.Difference(egTerm))
	}

	if formula.BinaryPathKinds[node.Kind] {
		phi1, err := inner.Eval(node.Children[0])
		if err != nil {
			return sdd.StateSet{}, err
		}
		phi2, err := inner.Eval(node.Children[1])
		if err != nil {
			return sdd.StateSet{}, err
		}
		switch node.Kind {
		case formula.KindEU:
			return eu(phi1, phi2), nil
		case formula.KindEM:
			return em(phi1, phi2), nil
		case formula.KindEW:
			return ewFair(phi1, phi2), nil
		case formula.KindER:
			return erFair(phi1, phi2), nil
		case formula.KindAU:
			return auFair(phi1, phi2), nil
		case formula.KindAW:
			return awFair(phi1, phi2), nil
		case formula.KindAR:
			return awFair(phi2, phi1.Intersect(phi2)), nil
		case formula.KindAM:
			return auFair(phi2, phi1.Intersect(phi2)), nil
		}
	}

	phi, err := inner.Eval(node.Children[0])
	if err != nil {
		return sdd.StateSet{}, err
	}
	switch node.Kind {
	case formula.KindEX:
		return inner.EX(phi), nil
	case formula.KindAX:
		return inner.AX(phi), nil
	case formula.KindEF:
		return ef(phi), nil
	case formula.KindEG:
		return m.egFair(phi), nil
	case formula.KindAF:
		return inner.Top.Difference(m.egFair(inner.Top.Difference(phi))), nil
	case formula.KindAG:
		return inner.Top.Difference(ef(inner.Top.Difference(phi))), nil
	}
	return sdd.StateSet{}, wrapErr(ErrBadKind, "%q is not a path quantifier", node.Kind)
}
