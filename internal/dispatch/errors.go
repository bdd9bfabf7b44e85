package dispatch

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/structure"
)

// ValidationFailure reports bad or missing input. The caller's structure is
// left untouched.
type ValidationFailure struct {
	Op      string
	Field   string
	Message string
}

func (e *ValidationFailure) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("dispatch: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("dispatch: %s: %s: %s", e.Op, e.Field, e.Message)
}

// GenerationFailure reports an operation or structure the registry does not
// know, or a generator that failed. The accompanying trace is empty.
type GenerationFailure struct {
	Kind structure.Kind
	Op   string
	Err  error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("dispatch: %s on %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

func invalid(op, field, format string, args ...any) *ValidationFailure {
	return &ValidationFailure{Op: op, Field: field, Message: fmt.Sprintf(format, args...)}
}
