package formula

import "fmt"

// SyntaxError reports a problem found while lexing or parsing formula
// text, with the offset it was found at. It mirrors the line/pos
// carrying error type tunascript uses for its own syntax errors.
type SyntaxError struct {
	Message string
	Pos     int
	Line    int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("formula: %s (line %d, pos %d)", e.Message, e.Line, e.Pos)
	}
	return fmt.Sprintf("formula: %s", e.Message)
}
