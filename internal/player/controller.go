// Package player drives playback of a step trace.
//
// The controller owns no timers. Play asks the injected Scheduler to deliver
// a Token after the current interval; the host hands the token back through
// Tick. Every load, pause or manual step invalidates outstanding tokens, so a
// late tick from an earlier trace or an earlier schedule is dropped without
// effect. The controller is not safe for concurrent use; hosts serialise
// calls on their event loop.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/trace"
)

type State int

const (
	Idle State = iota
	Playing
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DefaultInterval is the delay between steps at speed 1.
const DefaultInterval = 800 * time.Millisecond

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.render = r }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithBaseInterval sets the delay between steps at speed 1.
func WithBaseInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.base = d
		}
	}
}

type Controller struct {
	sched    Scheduler
	render   Renderer
	notifier notify.Notifier
	log      *slog.Logger

	base  time.Duration
	speed float64

	state      State
	session    *Session
	generation uint64
	seq        uint64
	pending    bool
}

func New(opts ...Option) *Controller {
	c := &Controller{base: DefaultInterval, speed: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = &ManualScheduler{}
	}
	if c.render == nil {
		c.render = RendererFunc(func(int, trace.Step) {})
	}
	if c.notifier == nil {
		c.notifier = notify.Nop
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	return c
}

func (c *Controller) State() State       { return c.state }
func (c *Controller) Session() *Session  { return c.session }
func (c *Controller) Speed() float64     { return c.speed }
func (c *Controller) Generation() uint64 { return c.generation }

// Interval is the delay the next scheduled tick will use.
func (c *Controller) Interval() time.Duration {
	return time.Duration(float64(c.base) / c.speed)
}

// Index returns the current step index, or -1 without a session.
func (c *Controller) Index() int {
	if c.session == nil {
		return -1
	}
	return c.session.Index
}

func (c *Controller) Len() int {
	if c.session == nil {
		return 0
	}
	return c.session.Len()
}

// Load replaces the session with a new one over steps and shows the first
// step. Any tick scheduled for the previous session becomes stale.
func (c *Controller) Load(algorithm string, steps trace.Steps) *Session {
	c.generation++
	c.cancel()
	c.session = newSession(algorithm, steps, c.generation)
	c.state = Idle
	c.log.Debug("session loaded", "algorithm", algorithm, "steps", len(steps), "generation", c.generation)
	c.apply()
	return c.session
}

// Close drops the session and invalidates any outstanding tick.
func (c *Controller) Close() {
	c.generation++
	c.cancel()
	c.session = nil
	c.state = Idle
}

// Play starts or resumes playback. With no steps it does nothing. From the
// completed state playback restarts at the first step.
func (c *Controller) Play() {
	if c.Len() == 0 || c.state == Playing {
		return
	}
	if c.state == Completed || c.session.AtEnd() {
		c.session.Index = 0
		c.apply()
	}
	if c.session.AtEnd() {
		c.complete()
		return
	}
	c.state = Playing
	c.schedule()
}

func (c *Controller) Pause() {
	if c.state != Playing {
		return
	}
	c.cancel()
	c.state = Paused
}

func (c *Controller) Toggle() {
	if c.state == Playing {
		c.Pause()
		return
	}
	c.Play()
}

// Tick advances playback by one step if tok is the token most recently
// handed to the scheduler. Stale tokens are ignored. It reports whether the
// tick was honoured.
func (c *Controller) Tick(tok Token) bool {
	if !c.pending || tok.Generation != c.generation || tok.Seq != c.seq || c.state != Playing {
		return false
	}
	c.pending = false
	if c.session.AtEnd() {
		c.complete()
		return true
	}
	c.session.Index++
	c.apply()
	if c.session.AtEnd() {
		c.complete()
		return true
	}
	c.schedule()
	return true
}

// StepForward moves one step ahead. It returns false, leaving the position
// unchanged, when already on the last step. While playing, the pending tick
// is replaced so the next automatic advance is a full interval away.
func (c *Controller) StepForward() bool {
	if c.session == nil || c.session.AtEnd() {
		c.boundary("Reached the end", "This is the last step.")
		return false
	}
	c.session.Index++
	c.apply()
	c.afterManualMove()
	return true
}

// StepBackward moves one step back; false at the first step.
func (c *Controller) StepBackward() bool {
	if c.session == nil || c.session.Index == 0 {
		c.boundary("At the beginning", "This is the first step.")
		return false
	}
	c.session.Index--
	c.apply()
	if c.state == Completed {
		c.state = Paused
	}
	c.afterManualMove()
	return true
}

func (c *Controller) JumpToStart() {
	if c.Len() == 0 {
		return
	}
	c.moveTo(0)
}

func (c *Controller) JumpToEnd() {
	if c.Len() == 0 {
		return
	}
	c.moveTo(c.session.Len() - 1)
}

// Seek moves to step i without changing the play state.
func (c *Controller) Seek(i int) error {
	if c.session == nil {
		return ErrNoSession
	}
	if i < 0 || i >= c.session.Len() {
		return fmt.Errorf("%w: %d not in 0..%d", ErrOutOfRange, i, c.session.Len()-1)
	}
	c.moveTo(i)
	return nil
}

// Reset rewinds to the first step and stops playback.
func (c *Controller) Reset() {
	c.cancel()
	c.state = Idle
	if c.Len() == 0 {
		return
	}
	c.session.Index = 0
	c.apply()
}

// SetSpeed changes the interval used for the next scheduled tick. The
// position and any already scheduled tick are left alone.
func (c *Controller) SetSpeed(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, factor)
	}
	c.speed = factor
	return nil
}

func (c *Controller) moveTo(i int) {
	if i == c.session.Index {
		return
	}
	c.session.Index = i
	c.apply()
	if c.state == Completed && !c.session.AtEnd() {
		c.state = Paused
	}
	c.afterManualMove()
}

// afterManualMove restarts the tick interval while playing. A move onto the
// last step while playing completes playback at once.
func (c *Controller) afterManualMove() {
	if c.state != Playing {
		return
	}
	if c.session.AtEnd() {
		c.complete()
		return
	}
	c.schedule()
}

func (c *Controller) schedule() {
	c.seq++
	c.pending = true
	c.sched.Schedule(c.Interval(), Token{Generation: c.generation, Seq: c.seq})
}

// cancel invalidates the outstanding token, if any.
func (c *Controller) cancel() {
	c.seq++
	c.pending = false
}

func (c *Controller) complete() {
	c.cancel()
	c.state = Completed
	c.notifier.Notify(context.Background(), notify.Notification{
		Title:       "Reached the end",
		Description: fmt.Sprintf("%s finished after %d steps.", c.session.Algorithm, c.session.Len()),
		Variant:     notify.VariantSuccess,
	})
}

func (c *Controller) boundary(title, desc string) {
	if c.session == nil {
		return
	}
	c.notifier.Notify(context.Background(), notify.Notification{Title: title, Description: desc, Variant: notify.VariantDefault})
}

func (c *Controller) apply() {
	if st, ok := c.session.Current(); ok {
		c.render.Render(c.session.Index, st)
	}
}
