package trace

import "errors"

var (
	// ErrEmptyTrace indicates a trace with no steps where at least one is required.
	ErrEmptyTrace = errors.New("trace: empty step list")

	// ErrDanglingStatus indicates a transient status left in the final step.
	ErrDanglingStatus = errors.New("trace: transient status in final step")
)
