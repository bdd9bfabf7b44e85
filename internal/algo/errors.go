package algo

import "errors"

var (
	// ErrUnknownAlgorithm indicates an operation name not registered for a kind.
	ErrUnknownAlgorithm = errors.New("algo: unknown algorithm")

	// ErrWrongStructure indicates a generator was handed a structure it cannot read.
	ErrWrongStructure = errors.New("algo: wrong structure for algorithm")

	// ErrMissingParam indicates a required parameter was not supplied.
	ErrMissingParam = errors.New("algo: missing parameter")
)
