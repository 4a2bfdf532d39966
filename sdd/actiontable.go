package sdd

import "github.com/emirpasic/gods/sets/linkedhashset"

// TauLabel is the default label denoting an invisible action, per spec.md §6.
const TauLabel = "_None"

// ActionTable is the labelled-action table A of spec.md §3: a mapping
// from a Relation (one per rule) to the set of labels that rule carries.
// It is keyed by *Relation pointer identity, mirroring the source's use
// of object identity for "a mapping from Relation to a set of strings".
type ActionTable struct {
	Rules map[*Relation][]string
	Tau   string

	// labels is L, the union of every rule's labels. A linkedhashset
	// keeps each individual rule's labels in the order that rule listed
	// them, but Rules itself is a Go map, so which rule is visited
	// first — and therefore the relative order of labels contributed by
	// different rules — is randomized per run. Labels() is not used by
	// any evaluation path (HasLabel/IsTau only check membership), so
	// this inter-rule nondeterminism has no observable effect today.
	labels *linkedhashset.Set
}

// NewActionTable validates and wraps a rule->labels mapping. tau is the
// label that marks a rule as carrying invisible actions; pass TauLabel
// for the spec.md default, or any string absent from L to disable the
// invisible-action shortcut.
func NewActionTable(rules map[*Relation][]string, tau string) (*ActionTable, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyActionTable
	}
	labels := linkedhashset.New()
	for rel, lbls := range rules {
		if rel == nil {
			return nil, ErrBadActionTable
		}
		for _, l := range lbls {
			labels.Add(l)
		}
	}
	return &ActionTable{Rules: rules, Tau: tau, labels: labels}, nil
}

// Labels returns L, the union of every rule's labels.
func (a *ActionTable) Labels() []string {
	out := make([]string, 0, a.labels.Size())
	for _, v := range a.labels.Values() {
		out = append(out, v.(string))
	}
	return out
}

// HasLabel reports whether name ∈ L.
func (a *ActionTable) HasLabel(name string) bool {
	return a.labels.Contains(name)
}

// LabelsOf returns the label set carried by a given rule.
func (a *ActionTable) LabelsOf(rel *Relation) []string {
	return a.Rules[rel]
}

// IsTau reports whether a rule carries the distinguished invisible-action
// label, forcing every action predicate to accept it unconditionally.
func (a *ActionTable) IsTau(rel *Relation) bool {
	if a.Tau == "" {
		return false
	}
	for _, l := range a.Rules[rel] {
		if l == a.Tau {
			return true
		}
	}
	return false
}
