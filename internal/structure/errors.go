package structure

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("structure: unknown kind")
	ErrTooMany     = errors.New("structure: too many values")
	ErrNotNumeric  = errors.New("structure: value is not numeric")
	ErrBadTree     = errors.New("structure: malformed tree")
)

// ParseError reports the offending token of a custom input string.
type ParseError struct {
	Token    string
	Position int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q at position %d", e.Err, e.Token, e.Position+1)
}

func (e *ParseError) Unwrap() error { return e.Err }
