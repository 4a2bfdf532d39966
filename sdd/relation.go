package sdd

// Relation is a monotone transformer StateSet -> StateSet. The checker
// package only ever uses it as "pred": Relation.Apply(S) = the states
// with at least one successor in S. Relations are always handed around
// as pointers so that an ActionTable (spec.md §3's "mapping from Relation
// to a set of label strings") can key on Go's pointer identity the same
// way the source keys on object identity.
type Relation struct {
	apply func(StateSet) StateSet
}

// Apply computes Relation(S).
func (r *Relation) Apply(s StateSet) StateSet {
	return r.apply(s)
}

// EmptyRelation is the relation with no edges: Apply always returns ∅.
func EmptyRelation(u *Universe) *Relation {
	return &Relation{apply: func(StateSet) StateSet { return Empty(u) }}
}

// RelationFromSuccessors builds the precedence relation for a forward
// adjacency map: pred(S) = { s | ∃ t ∈ succ[s], t ∈ S }. Every rule's
// pred relation and the global pred are both built this way.
func RelationFromSuccessors(u *Universe, succ map[StateID][]StateID) *Relation {
	return &Relation{
		apply: func(s StateSet) StateSet {
			out := Empty(u)
			for _, id := range u.IDs() {
				for _, t := range succ[id] {
					if s.Contains(t) {
						out = out.Union(FromIDs(u, id))
						break
					}
				}
			}
			return out
		},
	}
}

// Union returns the relation whose Apply(S) = r.Apply(S) ∪ other.Apply(S).
// This is valid precisely because pred distributes over union of edge sets:
// pred_{R1∪R2}(S) = pred_{R1}(S) ∪ pred_{R2}(S).
func (r *Relation) Union(other *Relation) *Relation {
	return &Relation{apply: func(s StateSet) StateSet {
		return r.Apply(s).Union(other.Apply(s))
	}}
}

// Intersect returns the pointwise intersection of the two relations' output sets.
func (r *Relation) Intersect(other *Relation) *Relation {
	return &Relation{apply: func(s StateSet) StateSet {
		return r.Apply(s).Intersect(other.Apply(s))
	}}
}

// Difference returns the pointwise difference of the two relations' output sets.
func (r *Relation) Difference(other *Relation) *Relation {
	return &Relation{apply: func(s StateSet) StateSet {
		return r.Apply(s).Difference(other.Apply(s))
	}}
}
