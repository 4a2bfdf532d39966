package checker

import (
	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// arctlStrategy implements spec §4.4: when a path-quantifier node
// carries an actions decoration α, the node is evaluated under
// pred_α = action-predicate-compiler(α, A) instead of the ambient
// pred; otherwise the ambient pred is used and the node behaves as
// plain CTL.
type arctlStrategy struct {
	u     *sdd.Universe
	at    *sdd.ActionTable
	cache *actionCache
}

func newARCTLPathOp(u *sdd.Universe, at *sdd.ActionTable, cache *actionCache) func(*CoreEvaluator, *formula.Phi) (sdd.StateSet, error) {
	s := &arctlStrategy{u: u, at: at, cache: cache}
	return s.pathOp
}

func (s *arctlStrategy) pathOp(ce *CoreEvaluator, node *formula.Phi) (sdd.StateSet, error) {
	if node.HasFairness() {
		return sdd.StateSet{}, wrapErr(ErrBadFairness, "fairness decoration on %q is not valid in an ARCTL checker", node.Kind)
	}
	pred := ce.Pred
	if node.Actions != nil {
		r, err := s.cache.compile(node.Actions, s.u, s.at)
		if err != nil {
			return sdd.StateSet{}, err
		}
		pred = r
	}
	return ce.evalPathOpWithPred(node, pred)
}
