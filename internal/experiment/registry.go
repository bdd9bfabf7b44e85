package experiment

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/structure"
)

// Example builds one kind of random input.
type Example struct {
	Name  string
	Kind  structure.Kind
	build func(g *random.Generator) structure.Structure
}

func (e Example) Build(g *random.Generator) structure.Structure { return e.build(g) }

type Registry struct {
	examples map[string]Example
}

func NewRegistry() *Registry {
	r := &Registry{examples: make(map[string]Example)}

	r.add("array", structure.KindArray, func(g *random.Generator) structure.Structure {
		return &structure.Array{Values: g.Array(0)}
	})
	r.add("sorted_array", structure.KindArray, func(g *random.Generator) structure.Structure {
		return &structure.Array{Values: g.SortedArray(0)}
	})
	r.add("reversed_array", structure.KindArray, func(g *random.Generator) structure.Structure {
		v := g.SortedArray(0)
		slices.Reverse(v)
		return &structure.Array{Values: v}
	})
	r.add("linked_list", structure.KindLinkedList, func(g *random.Generator) structure.Structure { return g.LinkedList(0) })
	r.add("stack", structure.KindStack, func(g *random.Generator) structure.Structure { return g.Stack(0) })
	r.add("queue", structure.KindQueue, func(g *random.Generator) structure.Structure { return g.Queue(0) })
	r.add("binary_tree", structure.KindBinaryTree, func(g *random.Generator) structure.Structure { return g.Tree() })
	r.add("hash_table", structure.KindHashTable, func(g *random.Generator) structure.Structure { return g.HashTable(0) })
	r.add("graph", structure.KindGraph, func(g *random.Generator) structure.Structure { return g.Graph(0) })

	return r
}

func (r *Registry) add(name string, k structure.Kind, fn func(*random.Generator) structure.Structure) {
	r.examples[name] = Example{Name: name, Kind: k, build: fn}
}

func (r *Registry) GetExample(name string) (Example, error) {
	ex, ok := r.examples[name]
	if !ok {
		return Example{}, fmt.Errorf("unknown example: %s", name)
	}
	return ex, nil
}

// ExampleFor picks the example that suits op on kind k. Binary search
// gets a sorted array; everything else the kind's default example.
func (r *Registry) ExampleFor(k structure.Kind, op string) (Example, error) {
	if k == structure.KindArray && op == "binary_search" {
		return r.GetExample("sorted_array")
	}
	return r.GetExample(string(k))
}

func (r *Registry) ListExamples() []string {
	names := make([]string, 0, len(r.examples))
	for name := range r.examples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
