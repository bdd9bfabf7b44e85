package player

import (
	"time"

	"github.com/san-kum/algoviz/internal/trace"
)

// Token identifies one scheduled tick. A tick is honoured only while both
// fields still match the controller.
type Token struct {
	Generation uint64
	Seq        uint64
}

// Scheduler arranges for the host to call Controller.Tick(tok) once after
// the given delay. The controller never waits itself.
type Scheduler interface {
	Schedule(after time.Duration, tok Token)
}

type SchedulerFunc func(after time.Duration, tok Token)

func (f SchedulerFunc) Schedule(after time.Duration, tok Token) { f(after, tok) }

// Renderer receives every step the controller applies.
type Renderer interface {
	Render(index int, step trace.Step)
}

type RendererFunc func(index int, step trace.Step)

func (f RendererFunc) Render(index int, step trace.Step) { f(index, step) }

type scheduled struct {
	After time.Duration
	Token Token
}

// ManualScheduler queues tokens instead of arming timers. Hosts without a
// clock (tests, batch export) fire them with Next or Drain.
type ManualScheduler struct {
	queue []scheduled
}

func (m *ManualScheduler) Schedule(after time.Duration, tok Token) {
	m.queue = append(m.queue, scheduled{After: after, Token: tok})
}

// Next pops the oldest queued token.
func (m *ManualScheduler) Next() (Token, time.Duration, bool) {
	if len(m.queue) == 0 {
		return Token{}, 0, false
	}
	s := m.queue[0]
	m.queue = m.queue[1:]
	return s.Token, s.After, true
}

func (m *ManualScheduler) Pending() int { return len(m.queue) }

// Drain fires queued tokens into c until none remain and returns how many
// ticks advanced playback.
func (m *ManualScheduler) Drain(c *Controller) int {
	n := 0
	for {
		tok, _, ok := m.Next()
		if !ok {
			return n
		}
		if c.Tick(tok) {
			n++
		}
	}
}
