package checker

import (
	"strings"
	"sync"

	"github.com/rfielding/farctl/formula"
	"github.com/rfielding/farctl/sdd"
)

// AtomResolver maps a variable-reference name (already stripped of its
// polarity suffix is NOT assumed; resolvers receive the raw token, e.g.
// "p", "p+", "p-") to the StateSet satisfying it. Checker installs a
// default resolver backed by sdd.FromAssignment; callers of NewCTL/
// NewFairARCTL may override it, per spec §4.1's "optional override".
type AtomResolver func(u *sdd.Universe, token string) (sdd.StateSet, error)

type atomKey struct {
	variable string
	value    int
}

// atomCache memoises (variable, value) -> StateSet, per spec §4.1:
// "memoised per (var, value) because they are referenced many times
// during AST evaluation and are independent of the formula being
// checked." Single-threaded callers pay only the mutex's uncontended
// fast path; spec §5 allows a lock here once evaluation is re-entrant.
type atomCache struct {
	mu    sync.RWMutex
	cache map[atomKey]sdd.StateSet
}

func newAtomCache() *atomCache {
	return &atomCache{cache: make(map[atomKey]sdd.StateSet)}
}

func (c *atomCache) get(k atomKey) (sdd.StateSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cache[k]
	return v, ok
}

func (c *atomCache) put(k atomKey, v sdd.StateSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[k] = v
}

// parseVarRef splits a "v", "v+", or "v-" token into its variable name
// and the value it pins, per spec §4.1's atom grammar.
func parseVarRef(token string) (variable string, value int, err error) {
	switch {
	case strings.HasSuffix(token, "+"):
		return strings.TrimSuffix(token, "+"), 1, nil
	case strings.HasSuffix(token, "-"):
		return strings.TrimSuffix(token, "-"), 0, nil
	default:
		return token, 1, nil
	}
}

// defaultAtomResolver realizes spec §4.1's algorithm via sdd.FromAssignment.
func defaultAtomResolver(u *sdd.Universe, token string) (sdd.StateSet, error) {
	variable, value, err := parseVarRef(token)
	if err != nil {
		return sdd.StateSet{}, err
	}
	s, err := sdd.FromAssignment(u, variable, value)
	if err != nil {
		return sdd.StateSet{}, wrapErr(ErrBadVariable, "%q: %v", token, err)
	}
	return s, nil
}

func (ce *CoreEvaluator) resolveAtom(node *formula.Phi) (sdd.StateSet, error) {
	name, ok := node.Value.(string)
	if !ok {
		return sdd.StateSet{}, wrapErr(ErrBadVariable, "name node value %v is not a string", node.Value)
	}
	variable, value, err := parseVarRef(name)
	if err != nil {
		return sdd.StateSet{}, err
	}
	key := atomKey{variable: variable, value: value}
	if cached, ok := ce.Atoms.get(key); ok {
		return cached.Intersect(ce.Top), nil
	}
	resolve := ce.Resolver
	if resolve == nil {
		resolve = defaultAtomResolver
	}
	s, err := resolve(ce.U, name)
	if err != nil {
		return sdd.StateSet{}, err
	}
	ce.Atoms.put(key, s)
	return s.Intersect(ce.Top), nil
}
