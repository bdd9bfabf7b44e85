// Package automation runs scripted batches of operations and writes their
// traces to an export directory.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/dispatch"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/structure"
)

// Scenario defines a scripted sequence of operations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        uint64         `yaml:"seed"`
	Random      random.Options `yaml:"random"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single operation in a scenario. Input takes precedence
// over Example; with neither, a random example suited to the operation is
// used. Continue runs on the previous step's final structure instead.
type ScenarioStep struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Operation string         `yaml:"operation"`
	Input     string         `yaml:"input"`
	Example   string         `yaml:"example"`
	Continue  bool           `yaml:"continue"`
	Params    map[string]any `yaml:"params"`
	SaveAs    string         `yaml:"save_as"`
}

func (s ScenarioStep) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%d-%s-%s", i+1, s.Kind, s.Operation)
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Random: random.DefaultOptions()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	if scenario.Name == "" {
		scenario.Name = path
	}
	return &scenario, nil
}

// Expand resolves glob patterns (with ** support) to scenario files,
// sorted and without duplicates. A pattern that matches nothing is an error.
func Expand(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no scenario matches %q", p)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// StepResult is the outcome of one scenario step. Err holds a validation
// or generation failure; such a step is recorded and the run continues.
type StepResult struct {
	Name        string
	Kind        structure.Kind
	Operation   string
	Steps       int
	Fingerprint string
	Applied     bool
	Err         error
	Entry       *store.Entry
}

type Runner struct {
	Dispatcher *dispatch.Dispatcher
	// Out receives one export per step with a SaveAs name. Nil disables saving.
	Out      *store.Dir
	Compress bool
	// Only, when set, is a glob that step labels must match to run.
	Only string
	Log  *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return logging.NewNop()
	}
	return r.Log
}

// RunScenario executes every step in order. It stops early only on context
// cancellation or when an export cannot be written.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	if r.Dispatcher == nil {
		r.Dispatcher = dispatch.New(dispatch.WithLogger(r.logger()))
	}
	if r.Only != "" && !doublestar.ValidatePattern(r.Only) {
		return nil, fmt.Errorf("bad step filter %q", r.Only)
	}
	gen := random.New(scenario.Seed, scenario.Random)
	examples := experiment.NewRegistry()
	results := make([]StepResult, 0, len(scenario.Steps))

	var prev structure.Structure
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := step.label(i)
		if r.Only != "" {
			if ok, _ := doublestar.Match(r.Only, name); !ok {
				continue
			}
		}
		r.logger().InfoContext(ctx, "running step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		kind, err := structure.ParseKind(step.Kind)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		input, err := r.input(step, kind, prev, gen, examples)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := StepResult{Name: name, Kind: kind, Operation: step.Operation}
		out, err := r.Dispatcher.Dispatch(ctx, kind, step.Operation, input, step.Params)
		if err != nil {
			res.Err = err
			results = append(results, res)
			prev = input
			continue
		}
		res.Steps = len(out.Steps)
		res.Applied = out.Applied
		res.Fingerprint, _ = out.Steps.Fingerprint()
		prev = out.Final

		if step.SaveAs != "" && r.Out != nil {
			ent, err := r.Out.Save(step.SaveAs, store.Export{Algorithm: out.Algorithm, Steps: out.Steps}, r.Compress)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Entry = &ent
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) input(step ScenarioStep, kind structure.Kind, prev structure.Structure, gen *random.Generator, examples *experiment.Registry) (structure.Structure, error) {
	switch {
	case step.Continue:
		if prev == nil || prev.Kind() != kind {
			return nil, errors.New("continue needs a previous step of the same kind")
		}
		return prev, nil
	case step.Input != "":
		values, err := structure.ParseValues(step.Input, structure.MaxArrayLen)
		if err != nil {
			return nil, err
		}
		return structure.FromValues(kind, values)
	case step.Example != "":
		ex, err := examples.GetExample(step.Example)
		if err != nil {
			return nil, err
		}
		if ex.Kind != kind {
			return nil, fmt.Errorf("example %s is a %s, not a %s", ex.Name, ex.Kind, kind)
		}
		return ex.Build(gen), nil
	}
	ex, err := examples.ExampleFor(kind, step.Operation)
	if err != nil {
		return nil, err
	}
	return ex.Build(gen), nil
}

// Failures counts steps that ended in a validation or generation failure.
func Failures(results []StepResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// SizeSweep runs one operation over random inputs of growing size.
type SizeSweep struct {
	Kind      structure.Kind
	Operation string
	MinSize   int
	MaxSize   int
	Trials    int
	Seed      uint64
	Params    map[string]any
}

// SweepResult holds the step counts observed at one input size.
type SweepResult struct {
	Size     int
	MinSteps int
	MaxSteps int
	Mean     float64
}

// RunSweep executes a size sweep. Sizes are clamped to what the structure
// kind allows. Inputs are drawn up front from one generator so results
// depend only on the seed; each size is then dispatched on its own
// goroutine, so the dispatcher's observers must be safe for concurrent use.
func RunSweep(ctx context.Context, sweep *SizeSweep, disp *dispatch.Dispatcher) ([]SweepResult, error) {
	if sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("bad size range %d..%d", sweep.MinSize, sweep.MaxSize)
	}
	limit := structure.MaxArrayLen
	if sweep.Kind == structure.KindGraph {
		limit = random.MaxGraphNodes
	}
	trials := max(sweep.Trials, 1)

	gen := random.New(sweep.Seed, random.DefaultOptions())
	examples := experiment.NewRegistry()
	ex, err := examples.ExampleFor(sweep.Kind, sweep.Operation)
	if err != nil {
		return nil, err
	}

	var inputs [][]structure.Structure
	for n := sweep.MinSize; n <= min(sweep.MaxSize, limit); n++ {
		batch := make([]structure.Structure, trials)
		for t := range batch {
			if batch[t], err = sized(gen, ex, sweep.Kind, n); err != nil {
				return nil, err
			}
		}
		inputs = append(inputs, batch)
	}

	results := make([]SweepResult, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, batch := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = sweepSize(ctx, disp, sweep, sweep.MinSize+i, batch)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func sweepSize(ctx context.Context, disp *dispatch.Dispatcher, sweep *SizeSweep, n int, batch []structure.Structure) (SweepResult, error) {
	res := SweepResult{Size: n}
	total := 0
	for t, input := range batch {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out, err := disp.Dispatch(ctx, sweep.Kind, sweep.Operation, input, sweep.Params)
		if err != nil {
			return res, fmt.Errorf("size %d: %w", n, err)
		}
		steps := len(out.Steps)
		total += steps
		if t == 0 || steps < res.MinSteps {
			res.MinSteps = steps
		}
		res.MaxSteps = max(res.MaxSteps, steps)
	}
	res.Mean = float64(total) / float64(len(batch))
	return res, nil
}

func sized(gen *random.Generator, ex experiment.Example, k structure.Kind, n int) (structure.Structure, error) {
	switch {
	case k == structure.KindGraph:
		return gen.Graph(n), nil
	case ex.Name == "sorted_array":
		return &structure.Array{Values: gen.SortedArray(n)}, nil
	}
	return gen.For(k, n)
}
