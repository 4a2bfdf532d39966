package checker

import (
	"sync"

	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// actionCache memoises compiled action-predicate relations keyed by
// formula.Hash(α), resolving the Design Notes' "Phi without hashing"
// open question in favor of hashing (SPEC_FULL.md §4.6).
type actionCache struct {
	mu    sync.RWMutex
	cache map[string]*sdd.Relation
}

func newActionCache() *actionCache {
	return &actionCache{cache: make(map[string]*sdd.Relation)}
}

// compile returns the Relation for α, building and caching it on first use.
func (c *actionCache) compile(alpha *formula.Phi, u *sdd.Universe, at *sdd.ActionTable) (*sdd.Relation, error) {
	key := formula.Hash(alpha)
	c.mu.RLock()
	if r, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	r, err := compileAction(alpha, u, at)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cache[key] = r
	c.mu.Unlock()
	return r, nil
}

// compileAction implements spec §4.3: the union of every rule whose
// label set satisfies α. A rule bearing τ in its own labels always
// satisfies α (invisible actions match everything).
//
// Design decision (SPEC_FULL.md §9, first open question): this module
// interprets not(bool(true)) as plain per-rule boolean negation — "no
// rule matches" when α reduces to !true — not as a negation of the
// full precedence relation. evalActionOnRule below applies ordinary
// propositional negation to the per-rule boolean, which already gives
// that reading with no special case needed.
func compileAction(alpha *formula.Phi, u *sdd.Universe, at *sdd.ActionTable) (*sdd.Relation, error) {
	result := sdd.EmptyRelation(u)
	for rule, labels := range at.Rules {
		matched, err := evalActionOnRule(alpha, labels, at)
		if err != nil {
			return nil, err
		}
		if matched {
			result = result.Union(rule)
		}
	}
	return result, nil
}

func evalActionOnRule(node *formula.Phi, labels []string, at *sdd.ActionTable) (bool, error) {
	if containsLabel(labels, at.Tau) {
		return true, nil
	}
	switch node.Kind {
	case formula.KindBool:
		b, ok := node.Value.(bool)
		if !ok {
			return false, wrapErr(ErrBadBool, "action literal %v is not a bool", node.Value)
		}
		return b, nil
	case formula.KindName:
		name, ok := node.Value.(string)
		if !ok {
			return false, wrapErr(ErrUnknownLabel, "action name %v is not a string", node.Value)
		}
		if !at.HasLabel(name) {
			return false, wrapErr(ErrUnknownLabel, "%q", name)
		}
		return containsLabel(labels, name), nil
	case formula.KindNot:
		inner, err := evalActionOnRule(node.Children[0], labels, at)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case formula.KindAnd:
		for _, c := range node.Children {
			v, err := evalActionOnRule(c, labels, at)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil
	case formula.KindOr:
		for _, c := range node.Children {
			v, err := evalActionOnRule(c, labels, at)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, wrapErr(ErrBadKind, "%q is not valid in an action predicate", node.Kind)
	}
}

func containsLabel(labels []string, name string) bool {
	for _, l := range labels {
		if l == name {
			return true
		}
	}
	return false
}

// andAction builds a synthetic and-node for α∧β without mutating
// either input, used by the Fair evaluator to compose a quantifier's
// own action restriction with an action-event's body.
func andAction(a, b *formula.Phi) *formula.Phi {
	if a == nil {
		return b
	}
	return &formula.Phi{Kind: formula.KindAnd, Children: []*formula.Phi{a, b}}
}

func notAction(a *formula.Phi) *formula.Phi {
	return &formula.Phi{Kind: formula.KindNot, Children: []*formula.Phi{a}}
}

func trueAction() *formula.Phi { return &formula.Phi{Kind: formula.KindBool, Value: true} }
