// Package dispatch is the single entry point from a (structure, operation)
// request to a step trace. It validates input, runs the generator on a copy
// of the caller's structure and reports the proposed final state.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// Result is a successful dispatch. Final is always a fresh value the caller
// may adopt; when nothing changed it equals the input.
type Result struct {
	Algorithm string
	Steps     trace.Steps
	Final     structure.Structure
	Value     *int
	Applied   bool
	Log       []string
}

// Outcome labels used in events.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Event describes one finished dispatch for observers such as metrics.
type Event struct {
	Kind     structure.Kind
	Op       string
	Outcome  string
	Steps    int
	Duration time.Duration
}

type Option func(*Dispatcher)

func WithRegistry(r *algo.Registry) Option {
	return func(d *Dispatcher) { d.reg = r }
}

func WithNotifier(n notify.Notifier) Option {
	return func(d *Dispatcher) { d.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithObserver registers fn to be called after every dispatch.
func WithObserver(fn func(Event)) Option {
	return func(d *Dispatcher) { d.observers = append(d.observers, fn) }
}

type Dispatcher struct {
	reg       *algo.Registry
	notifier  notify.Notifier
	log       *slog.Logger
	observers []func(Event)
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.reg == nil {
		d.reg = algo.NewRegistry()
	}
	if d.notifier == nil {
		d.notifier = notify.Nop
	}
	if d.log == nil {
		d.log = logging.NewNop()
	}
	return d
}

func (d *Dispatcher) Registry() *algo.Registry { return d.reg }

// Dispatch decodes raw params and runs op. See DispatchParams.
func (d *Dispatcher) Dispatch(ctx context.Context, kind structure.Kind, op string, s structure.Structure, raw map[string]any) (*Result, error) {
	p, err := DecodeParams(op, raw)
	if err != nil {
		return d.fail(ctx, kind, op, s, err, time.Now())
	}
	return d.DispatchParams(ctx, kind, op, s, p)
}

// DispatchParams validates the request, generates the trace and computes the
// final structure. Every error is either a *ValidationFailure or a
// *GenerationFailure; s is never modified.
func (d *Dispatcher) DispatchParams(ctx context.Context, kind structure.Kind, op string, s structure.Structure, p algo.Params) (*Result, error) {
	start := time.Now()

	if _, err := structure.ParseKind(string(kind)); err != nil {
		return d.fail(ctx, kind, op, s, &GenerationFailure{Kind: kind, Op: op, Err: err}, start)
	}
	info, ok := d.reg.Lookup(kind, op)
	if !ok {
		return d.fail(ctx, kind, op, s, &GenerationFailure{Kind: kind, Op: op, Err: algo.ErrUnknownAlgorithm}, start)
	}
	if err := validate(info, s, p); err != nil {
		return d.fail(ctx, kind, op, s, err, start)
	}

	out, err := d.generate(s.Clone(), op, p)
	if err != nil {
		return d.fail(ctx, kind, op, s, &GenerationFailure{Kind: kind, Op: op, Err: err}, start)
	}
	if len(out.Steps) == 0 {
		return d.fail(ctx, kind, op, s, &GenerationFailure{Kind: kind, Op: op, Err: trace.ErrEmptyTrace}, start)
	}

	res := &Result{
		Algorithm: info.Name,
		Steps:     out.Steps,
		Final:     out.Final,
		Value:     out.Result,
		Applied:   out.Applied,
	}
	if res.Final == nil || !out.Applied {
		res.Final = s.Clone()
	}
	last, _ := out.Steps.Last()
	res.Log = append(res.Log, fmt.Sprintf("%s on %s: %d steps", info.Title, kind, len(out.Steps)), last.Description)

	if !out.Applied {
		d.log.InfoContext(ctx, "operation not applied", "kind", kind, "op", op, "reason", last.Description)
	} else {
		d.log.DebugContext(ctx, "dispatched", "kind", kind, "op", op, "steps", len(out.Steps))
	}
	d.emit(Event{Kind: kind, Op: op, Outcome: OutcomeOK, Steps: len(out.Steps), Duration: time.Since(start)})
	return res, nil
}

// generate runs the registry with panics turned into errors.
func (d *Dispatcher) generate(s structure.Structure, op string, p algo.Params) (out algo.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = algo.Outcome{}
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return d.reg.Generate(s, op, p)
}

func (d *Dispatcher) fail(ctx context.Context, kind structure.Kind, op string, s structure.Structure, err error, start time.Time) (*Result, error) {
	res := &Result{Algorithm: op, Steps: trace.Steps{}}
	if s != nil {
		res.Final = s.Clone()
	}

	var vf *ValidationFailure
	if errors.As(err, &vf) {
		res.Log = []string{vf.Message}
		d.log.InfoContext(ctx, "validation failed", "kind", kind, "op", op, "field", vf.Field, "reason", vf.Message)
		d.notifier.Notify(ctx, notify.Notification{
			Title:       "Invalid input",
			Description: vf.Message,
			Variant:     notify.VariantDestructive,
		})
		d.emit(Event{Kind: kind, Op: op, Outcome: OutcomeInvalid, Duration: time.Since(start)})
		return res, err
	}

	res.Log = []string{err.Error()}
	d.log.ErrorContext(ctx, "generation failed", "kind", kind, "op", op, "error", err)
	d.emit(Event{Kind: kind, Op: op, Outcome: OutcomeFailed, Duration: time.Since(start)})
	return res, err
}

func (d *Dispatcher) emit(e Event) {
	for _, fn := range d.observers {
		fn(e)
	}
}
