package structure

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxArrayLen caps user-supplied collections so generation stays within one
// scheduling turn.
const MaxArrayLen = 30

// ParseValues parses a comma-separated list of integers. Blank tokens are
// skipped; any non-numeric token or more than max values is an error.
func ParseValues(input string, max int) ([]int, error) {
	if max <= 0 {
		max = MaxArrayLen
	}
	fields := strings.Split(input, ",")
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		tok := strings.TrimSpace(f)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ParseError{Token: tok, Position: i, Err: ErrNotNumeric}
		}
		out = append(out, v)
	}
	if len(out) > max {
		return nil, &ParseError{Err: fmt.Errorf("%w: %d > %d", ErrTooMany, len(out), max)}
	}
	return out, nil
}

// FormatValues is the inverse of ParseValues.
func FormatValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
