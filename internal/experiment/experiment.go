// Package experiment hosts one visualisation: the structure on screen, the
// dispatcher that changes it and the controller that plays the result.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/san-kum/algoviz/internal/dispatch"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/structure"
)

type Config struct {
	Kind   structure.Kind
	Seed   uint64
	Random random.Options
}

type Option func(*Experiment)

func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(e *Experiment) { e.disp = d }
}

func WithController(c *player.Controller) Option {
	return func(e *Experiment) { e.ctrl = c }
}

func WithNotifier(n notify.Notifier) Option {
	return func(e *Experiment) { e.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

type Experiment struct {
	cfg      Config
	examples *Registry
	gen      *random.Generator
	disp     *dispatch.Dispatcher
	ctrl     *player.Controller
	notifier notify.Notifier
	log      *slog.Logger

	current structure.Structure
	last    *dispatch.Result
	history []string
}

// New creates an experiment holding a random example of cfg.Kind.
func New(cfg Config, opts ...Option) (*Experiment, error) {
	if _, err := structure.ParseKind(string(cfg.Kind)); err != nil {
		return nil, err
	}
	e := &Experiment{
		cfg:      cfg,
		examples: NewRegistry(),
		gen:      random.New(cfg.Seed, cfg.Random),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = notify.Nop
	}
	if e.log == nil {
		e.log = logging.NewNop()
	}
	if e.disp == nil {
		e.disp = dispatch.New(dispatch.WithNotifier(e.notifier), dispatch.WithLogger(e.log))
	}
	if e.ctrl == nil {
		e.ctrl = player.New(player.WithNotifier(e.notifier), player.WithLogger(e.log))
	}

	ex, err := e.examples.GetExample(string(cfg.Kind))
	if err != nil {
		return nil, err
	}
	e.current = ex.Build(e.gen)
	return e, nil
}

func (e *Experiment) Kind() structure.Kind             { return e.cfg.Kind }
func (e *Experiment) Controller() *player.Controller   { return e.ctrl }
func (e *Experiment) Dispatcher() *dispatch.Dispatcher { return e.disp }
func (e *Experiment) Examples() *Registry              { return e.examples }
func (e *Experiment) Last() *dispatch.Result           { return e.last }

// Structure returns a copy of the hosted structure.
func (e *Experiment) Structure() structure.Structure { return e.current.Clone() }

// History returns the operation log, oldest first.
func (e *Experiment) History() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// Replace swaps in s. The running session is closed so pending ticks for
// the old structure are dropped.
func (e *Experiment) Replace(s structure.Structure) error {
	if s == nil {
		return errors.New("experiment: nil structure")
	}
	if s.Kind() != e.cfg.Kind {
		return fmt.Errorf("experiment: expected %s, got %s", e.cfg.Kind, s.Kind())
	}
	e.current = s.Clone()
	e.last = nil
	e.ctrl.Close()
	return nil
}

// Randomize replaces the structure with a fresh example suited to op.
func (e *Experiment) Randomize(ctx context.Context, op string) error {
	ex, err := e.examples.ExampleFor(e.cfg.Kind, op)
	if err != nil {
		return err
	}
	if err := e.Replace(ex.Build(e.gen)); err != nil {
		return err
	}
	noun := strings.ReplaceAll(string(e.cfg.Kind), "_", " ")
	e.record(fmt.Sprintf("generated random %s (%d)", noun, e.current.Len()))
	e.notifier.Notify(ctx, notify.Notification{
		Title:       "Random example generated",
		Description: fmt.Sprintf("New %s with %d elements.", noun, e.current.Len()),
		Variant:     notify.VariantSuccess,
	})
	return nil
}

// Parse replaces the structure with one built from a comma-separated value
// list. Bad input is reported through the notifier and leaves the
// structure unchanged.
func (e *Experiment) Parse(ctx context.Context, input string) error {
	values, err := structure.ParseValues(input, structure.MaxArrayLen)
	if err == nil {
		var s structure.Structure
		if s, err = structure.FromValues(e.cfg.Kind, values); err == nil {
			e.record("loaded " + structure.FormatValues(values))
			return e.Replace(s)
		}
	}
	e.notifier.Notify(ctx, notify.Notification{
		Title:       "Invalid input",
		Description: err.Error(),
		Variant:     notify.VariantDestructive,
	})
	return err
}

// Run dispatches op against the hosted structure. On success the controller
// is loaded with the new trace and the structure becomes the proposed final
// state. On failure nothing changes.
func (e *Experiment) Run(ctx context.Context, op string, params map[string]any) (*dispatch.Result, error) {
	res, err := e.disp.Dispatch(ctx, e.cfg.Kind, op, e.current, params)
	if err != nil {
		return nil, err
	}
	e.last = res
	e.current = res.Final
	e.history = append(e.history, res.Log...)
	e.ctrl.Load(res.Algorithm, res.Steps)
	e.log.DebugContext(ctx, "operation run", "kind", e.cfg.Kind, "op", op, "steps", len(res.Steps), "applied", res.Applied)
	return res, nil
}

// Close ends the hosted session.
func (e *Experiment) Close() {
	e.ctrl.Close()
}

func (e *Experiment) record(msg string) {
	e.history = append(e.history, msg)
}
