package player

import (
	"iter"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/trace"
)

// Session ties one step trace to a playback position. The steps are owned by
// the session and never modified; loading new steps creates a new session.
type Session struct {
	ID         uuid.UUID
	Algorithm  string
	Steps      trace.Steps
	Index      int
	Generation uint64
}

func newSession(algorithm string, steps trace.Steps, gen uint64) *Session {
	return &Session{
		ID:         uuid.New(),
		Algorithm:  algorithm,
		Steps:      steps.Clone(),
		Generation: gen,
	}
}

func (s *Session) Len() int { return len(s.Steps) }

func (s *Session) Current() (trace.Step, bool) {
	if s == nil || len(s.Steps) == 0 {
		return trace.Step{}, false
	}
	return s.Steps[s.Index], true
}

// AtEnd reports whether the position is on the last step.
func (s *Session) AtEnd() bool { return len(s.Steps) == 0 || s.Index == len(s.Steps)-1 }

// Frames yields the steps after the current position in order, moving the
// position onto each one before it is handed out. Breaking out of the loop
// leaves the session on the last step delivered, so a later call resumes
// from there.
func (s *Session) Frames() iter.Seq2[int, trace.Step] {
	return func(yield func(int, trace.Step) bool) {
		for s.Index+1 < len(s.Steps) {
			s.Index++
			if !yield(s.Index, s.Steps[s.Index]) {
				return
			}
		}
	}
}
