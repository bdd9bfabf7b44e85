package trace

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"iter"

	"lukechampine.com/blake3"
)

type Steps []Step

// Last returns the final step. ok is false for an empty trace.
func (s Steps) Last() (Step, bool) {
	if len(s) == 0 {
		return Step{}, false
	}
	return s[len(s)-1], true
}

// Validate checks the two structural guarantees every generated trace makes:
// it is not empty and its final step carries only terminal statuses.
func (s Steps) Validate() error {
	last, ok := s.Last()
	if !ok {
		return ErrEmptyTrace
	}
	if !last.Terminal() {
		return fmt.Errorf("%w: %q", ErrDanglingStatus, last.Description)
	}
	return nil
}

func (s Steps) Clone() Steps {
	if s == nil {
		return nil
	}
	c := make(Steps, len(s))
	for i, st := range s {
		c[i] = st.Clone()
	}
	return c
}

// All yields the steps in order and stops as soon as the consumer does.
func (s Steps) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, st := range s {
			if !yield(i, st) {
				return
			}
		}
	}
}

// Fingerprint hashes the canonical JSON encoding of the trace. Two traces
// with equal fingerprints render identically.
func (s Steps) Fingerprint() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("trace: fingerprint: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Builder accumulates steps. Every pushed step is cloned, so callers can keep
// mutating the slices they passed in.
type Builder struct {
	steps Steps
}

func NewBuilder(capacity int) *Builder {
	return &Builder{steps: make(Steps, 0, capacity)}
}

func (b *Builder) Push(s Step) {
	b.steps = append(b.steps, s.Clone())
}

// Elements records a step holding only linear elements.
func (b *Builder) Elements(elems []Element, line int, format string, args ...any) {
	b.Push(Step{Elements: elems, LineIndex: line, Description: fmt.Sprintf(format, args...)})
}

func (b *Builder) Len() int { return len(b.steps) }

// Steps returns the accumulated trace. The builder must not be used afterwards.
func (b *Builder) Steps() Steps {
	out := b.steps
	b.steps = nil
	return out
}
