// Package modelspec is the model-loading front end spec.md §1 keeps
// out of the core: it reads a transition system from a TOML file and
// produces the sdd.Universe, global precedence Relation, and
// sdd.ActionTable the checker package operates on.
package modelspec

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rfielding/farctl/sdd"
)

// stateDecl is one [[state]] table: a named state and its variable
// assignment.
type stateDecl struct {
	ID   string         `toml:"id"`
	Vars map[string]int `toml:"vars"`
}

// ruleDecl is one [[rule]] table: a labelled group of edges. From[i]
// points to To[i] for every index; every edge in the group carries
// every label in Labels, mirroring sdd.ActionTable's one-Relation-per-
// rule, many-labels-per-rule shape.
type ruleDecl struct {
	Labels []string `toml:"labels"`
	From   []string `toml:"from"`
	To     []string `toml:"to"`
}

// fileSpec is the root TOML document shape.
type fileSpec struct {
	Tau    string      `toml:"tau"`
	States []stateDecl `toml:"state"`
	Rules  []ruleDecl  `toml:"rule"`
}

// Model bundles everything checker.NewCTL/NewARCTL/NewFairARCTL need,
// plus a table mapping each StateID to the first state id declared for it.
type Model struct {
	Universe *sdd.Universe
	Pred     *sdd.Relation
	Actions  *sdd.ActionTable
	Names    map[sdd.StateID]string
}

// LoadFile reads and parses a TOML model file at path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr(ErrDecode, "%v", err)
	}
	return Load(data)
}

// Load parses TOML model source and builds the Model it describes.
func Load(data []byte) (*Model, error) {
	var spec fileSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, wrapErr(ErrDecode, "%v", err)
	}
	return buildModel(&spec)
}

func buildModel(spec *fileSpec) (*Model, error) {
	if len(spec.States) == 0 {
		return nil, ErrNoStates
	}

	assignments := make([]sdd.Assignment, 0, len(spec.States))
	order := make([]string, 0, len(spec.States))
	seen := make(map[string]bool, len(spec.States))
	for _, s := range spec.States {
		if seen[s.ID] {
			return nil, wrapErr(ErrDuplicateState, "%q", s.ID)
		}
		seen[s.ID] = true
		order = append(order, s.ID)
		assignments = append(assignments, sdd.Assignment(s.Vars))
	}

	u, err := sdd.NewUniverse(assignments)
	if err != nil {
		return nil, wrapErr(ErrBadVariables, "%v", err)
	}

	names := make(map[sdd.StateID]string, len(order))
	idOf := make(map[string]sdd.StateID, len(order))
	for i, name := range order {
		id, ok := u.Lookup(assignments[i])
		if !ok {
			return nil, wrapErr(ErrBadVariables, "state %q did not resolve to any StateID", name)
		}
		idOf[name] = id
		if _, exists := names[id]; !exists {
			names[id] = name
		}
	}

	globalSucc := make(map[sdd.StateID][]sdd.StateID)
	rules := make(map[*sdd.Relation][]string, len(spec.Rules))
	for i, r := range spec.Rules {
		if len(r.From) != len(r.To) {
			return nil, wrapErr(ErrMismatchedEdges, "rule %d", i)
		}
		succ := make(map[sdd.StateID][]sdd.StateID)
		for j := range r.From {
			fromID, ok := idOf[r.From[j]]
			if !ok {
				return nil, wrapErr(ErrUnknownState, "%q", r.From[j])
			}
			toID, ok := idOf[r.To[j]]
			if !ok {
				return nil, wrapErr(ErrUnknownState, "%q", r.To[j])
			}
			succ[fromID] = append(succ[fromID], toID)
			globalSucc[fromID] = append(globalSucc[fromID], toID)
		}
		rel := sdd.RelationFromSuccessors(u, succ)
		labels := make([]string, len(r.Labels))
		copy(labels, r.Labels)
		rules[rel] = labels
	}

	pred := sdd.RelationFromSuccessors(u, globalSucc)

	model := &Model{Universe: u, Pred: pred, Names: names}
	if len(rules) > 0 {
		tau := spec.Tau
		if tau == "" {
			tau = sdd.TauLabel
		}
		at, err := sdd.NewActionTable(rules, tau)
		if err != nil {
			return nil, fmt.Errorf("modelspec: %w", err)
		}
		model.Actions = at
	}
	return model, nil
}
