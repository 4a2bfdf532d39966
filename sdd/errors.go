package sdd

import "errors"

var (
	// ErrEmptyUniverse reports a universe with no states. No function in
	// this package returns it: Variables() on an empty universe returns an
	// empty list.
	ErrEmptyUniverse = errors.New("sdd: universe has no states")

	// ErrBadAssignment indicates a state assignment used a value outside {0,1}.
	ErrBadAssignment = errors.New("sdd: assignment values must be 0 or 1")

	// ErrInconsistentVariables indicates two states in the same universe
	// name different variable sets; V is only well defined when every
	// state agrees on it.
	ErrInconsistentVariables = errors.New("sdd: all states must share the same variable set")

	// ErrUnknownVariable indicates a variable reference outside V.
	ErrUnknownVariable = errors.New("sdd: unknown variable")

	// ErrForeignUniverse indicates a StateSet or Relation built against one
	// Universe was used together with a different Universe.
	ErrForeignUniverse = errors.New("sdd: state set belongs to a different universe")

	// ErrEmptyActionTable indicates an ActionTable was built with no rules.
	ErrEmptyActionTable = errors.New("sdd: action table must have at least one rule")

	// ErrBadActionTable indicates a nil Relation key in an action table.
	ErrBadActionTable = errors.New("sdd: action table rule must have a non-nil relation")
)
