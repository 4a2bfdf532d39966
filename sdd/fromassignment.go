package sdd

// FromAssignment realizes the spec.md §4.1 primitive: the subset of u
// pinning variable to value, with every other variable in u.Variables()
// left free. It is built by folding an acceptance test over the
// variables in reverse canonical order, one running intersection per
// variable, which is a literal transliteration of "the diagram is built
// bottom-up in the canonical variable order" from the spec onto a
// concrete (non-BDD) backend: a real decision-diagram library would do
// the same fold internally to get sharing between atoms, but since our
// states are enumerated rather than compiled, the fold and a plain
// filter agree on every input. See DESIGN.md for why no BDD library from
// the retrieval pack could stand in here.
func FromAssignment(u *Universe, variable string, value int) (StateSet, error) {
	if !u.HasVariable(variable) {
		return StateSet{}, ErrUnknownVariable
	}
	if value != 0 && value != 1 {
		return StateSet{}, ErrBadAssignment
	}

	vars := u.Variables()
	acc := All(u)
	for i := len(vars) - 1; i >= 0; i-- {
		name := vars[i]
		if name != variable {
			// Free variable: every value is acceptable, so intersecting
			// with "all states" leaves acc unchanged.
			continue
		}
		pinned := Empty(u)
		for _, id := range u.IDs() {
			v, err := u.Value(id, name)
			if err != nil {
				return StateSet{}, err
			}
			if v == value {
				pinned = pinned.Union(FromIDs(u, id))
			}
		}
		acc = acc.Intersect(pinned)
	}
	return acc, nil
}
