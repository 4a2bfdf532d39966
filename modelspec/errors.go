package modelspec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the TOML model-loading front end, following the
// same sentinel-plus-detail shape as checker.Error.
var (
	ErrNoStates        = errors.New("modelspec: model declares no states")
	ErrDuplicateState  = errors.New("modelspec: duplicate state id")
	ErrUnknownState    = errors.New("modelspec: rule references an unknown state id")
	ErrMismatchedEdges = errors.New("modelspec: rule's from/to lists have different lengths")
	ErrBadVariables    = errors.New("modelspec: state variable assignment is invalid")
	ErrDecode          = errors.New("modelspec: could not decode model TOML")
)

// Error wraps one of the sentinels above with contextual detail.
type Error struct {
	Sentinel error
	Detail   string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", e.Sentinel.Error(), e.Detail)
}

func (e *Error) Unwrap() error { return e.Sentinel }

func wrapErr(sentinel error, format string, args ...interface{}) error {
	return &Error{Sentinel: sentinel, Detail: fmt.Sprintf(format, args...)}
}
