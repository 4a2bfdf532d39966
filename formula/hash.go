package formula

import "github.com/cnf/structhash"

// Hash returns a structural hash of an action sub-formula, stable
// across calls for equal trees. The checker package's action-predicate
// compiler uses this as a memoization key so the same α is only
// compiled into a Relation once per Checker (spec.md §4.3's "memoize
// the compiled Relation" requirement).
func Hash(p *Phi) string {
	h, err := structhash.Hash(struct {
		Kind     Kind
		Value    interface{}
		Children []string
	}{
		Kind:     p.Kind,
		Value:    p.Value,
		Children: hashChildren(p.Children),
	}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func hashChildren(cs []*Phi) []string {
	if cs == nil {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = Hash(c)
	}
	return out
}
