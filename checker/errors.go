package checker

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy of spec §7. checker.Error wraps one
// of these with the offending detail so callers can both match via
// errors.Is and read a human message, the same shape dekarrin-tunaq's
// server/serr package uses for its own sentinel-plus-wrapper errors.
var (
	ErrBadType      = errors.New("checker: argument has the wrong type")
	ErrEmptyActions = errors.New("checker: action table has no rules")
	ErrBadVariable  = errors.New("checker: atom references an unknown variable")
	ErrUnknownLabel = errors.New("checker: action predicate references an unknown label")
	ErrBadBool      = errors.New("checker: bool node does not carry a boolean value")
	ErrBadKind      = errors.New("checker: formula node kind is not valid here")
	ErrBadFairness  = errors.New("checker: invalid fairness decoration")
)

// Error wraps one of the sentinels above with contextual detail.
// Unwrap lets errors.Is(err, checker.ErrBadKind) see through it.
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
