package algo

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

type Family string

const (
	FamilySorting   Family = "sorting"
	FamilySearching Family = "searching"
	FamilyGraph     Family = "graph"
	FamilyTree      Family = "tree"
	FamilyOperation Family = "operation"
)

// Info describes a registered operation.
type Info struct {
	Name       string         `json:"name" yaml:"name"`
	Title      string         `json:"title" yaml:"title"`
	Family     Family         `json:"family" yaml:"family"`
	Kind       structure.Kind `json:"kind" yaml:"kind"`
	Params     []string       `json:"params,omitempty" yaml:"params,omitempty"`
	Pseudocode []string       `json:"pseudocode" yaml:"pseudocode"`
	Complexity string         `json:"complexity" yaml:"complexity"`
	Mutates    bool           `json:"mutates" yaml:"mutates"`
}

// Generator produces the trace for one operation. It must not modify s.
type Generator func(s structure.Structure, p Params) (Outcome, error)

type key struct {
	kind structure.Kind
	name string
}

type entry struct {
	info Info
	gen  Generator
}

// Registry maps (kind, operation) pairs to generators.
type Registry struct {
	entries map[key]entry
	order   []key
}

// NewRegistry returns a registry holding every built-in operation.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[key]entry)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the generator for info.Kind and info.Name.
func (r *Registry) Register(info Info, gen Generator) {
	k := key{info.Kind, info.Name}
	if _, ok := r.entries[k]; !ok {
		r.order = append(r.order, k)
	}
	r.entries[k] = entry{info: info, gen: gen}
}

func (r *Registry) Lookup(kind structure.Kind, name string) (Info, bool) {
	e, ok := r.entries[key{kind, name}]
	return e.info, ok
}

// List returns every registered operation in registration order.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k].info)
	}
	return out
}

func (r *Registry) ForKind(kind structure.Kind) []Info {
	var out []Info
	for _, k := range r.order {
		if k.kind == kind {
			out = append(out, r.entries[k].info)
		}
	}
	return out
}

// Find returns the first registered operation with the given name, whatever
// its kind.
func (r *Registry) Find(name string) (Info, bool) {
	i := slices.IndexFunc(r.order, func(k key) bool { return k.name == name })
	if i < 0 {
		return Info{}, false
	}
	return r.entries[r.order[i]].info, true
}

// Generate runs the operation registered for s's kind. An unknown operation
// yields an empty trace and ErrUnknownAlgorithm.
func (r *Registry) Generate(s structure.Structure, op string, p Params) (Outcome, error) {
	if s == nil {
		return Outcome{}, fmt.Errorf("%w: nil structure", ErrWrongStructure)
	}
	e, ok := r.entries[key{s.Kind(), op}]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q for %s", ErrUnknownAlgorithm, op, s.Kind())
	}
	return e.gen(s, p)
}

func asArray(s structure.Structure) (*structure.Array, error) {
	a, ok := s.(*structure.Array)
	if !ok {
		return nil, fmt.Errorf("%w: want array, got %s", ErrWrongStructure, s.Kind())
	}
	return a, nil
}

func asGraph(s structure.Structure) (*structure.Graph, error) {
	g, ok := s.(*structure.Graph)
	if !ok {
		return nil, fmt.Errorf("%w: want graph, got %s", ErrWrongStructure, s.Kind())
	}
	return g, nil
}

func asTree(s structure.Structure) (*structure.BinaryTree, error) {
	t, ok := s.(*structure.BinaryTree)
	if !ok {
		return nil, fmt.Errorf("%w: want binary_tree, got %s", ErrWrongStructure, s.Kind())
	}
	return t, nil
}

func need(v *int, name string) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return *v, nil
}

func sorter(fn func([]int) trace.Steps) Generator {
	return func(s structure.Structure, _ Params) (Outcome, error) {
		a, err := asArray(s)
		if err != nil {
			return Outcome{}, err
		}
		steps := fn(a.Values)
		last, _ := steps.Last()
		return Outcome{Steps: steps, Final: &structure.Array{Values: last.Values()}, Applied: true}, nil
	}
}

func searcher(fn func([]int, int) (trace.Steps, int)) Generator {
	return func(s structure.Structure, p Params) (Outcome, error) {
		a, err := asArray(s)
		if err != nil {
			return Outcome{}, err
		}
		t, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		steps, idx := fn(a.Values, t)
		out := readOnly(steps)
		if idx >= 0 {
			out.Result = &idx
		}
		return out, nil
	}
}

func graphWalk(fn func(*structure.Graph, int, int) trace.Steps) Generator {
	return func(s structure.Structure, p Params) (Outcome, error) {
		g, err := asGraph(s)
		if err != nil {
			return Outcome{}, err
		}
		steps := fn(g, p.start(), p.target())
		out := readOnly(steps)
		if last, ok := steps.Last(); ok && len(last.Path) > 0 {
			n := len(last.Path) - 1
			out.Result = &n
		}
		return out, nil
	}
}

func traversal(r Traversal) Generator {
	return func(s structure.Structure, _ Params) (Outcome, error) {
		t, err := asTree(s)
		if err != nil {
			return Outcome{}, err
		}
		return readOnly(Traverse(t, r)), nil
	}
}

// op adapts a typed structure operation to a Generator.
func op[T structure.Structure](fn func(T, Params) (Outcome, error)) Generator {
	return func(s structure.Structure, p Params) (Outcome, error) {
		v, ok := s.(T)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: got %s", ErrWrongStructure, s.Kind())
		}
		return fn(v, p)
	}
}
