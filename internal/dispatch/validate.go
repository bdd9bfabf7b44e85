package dispatch

import (
	"slices"
	"strings"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/structure"
)

// MaxGraphNodes caps graph size so a trace is generated within one frame.
const MaxGraphNodes = 12

// needsElement lists operations that read or remove an existing element.
var needsElement = []string{"pop", "dequeue", "peek", "delete", "remove"}

// grows lists operations that add one element.
var grows = []string{"add", "push", "enqueue", "insert"}

func validate(info algo.Info, s structure.Structure, p algo.Params) error {
	op := info.Name
	if s == nil {
		return invalid(op, "structure", "no structure to operate on")
	}
	if s.Kind() != info.Kind {
		return invalid(op, "kind", "expected a %s, got a %s", info.Kind, s.Kind())
	}

	for _, name := range info.Params {
		if strings.HasSuffix(name, "?") {
			continue
		}
		if name == "window" {
			continue
		}
		if param(p, name) == nil {
			return invalid(op, name, "enter a numeric %s", name)
		}
	}

	n := s.Len()
	if slices.Contains(needsElement, op) && n == 0 {
		return invalid(op, "", "the %s is empty", strings.ReplaceAll(string(s.Kind()), "_", " "))
	}
	if slices.Contains(grows, op) && s.Kind() != structure.KindGraph && n >= structure.MaxArrayLen {
		return invalid(op, "", "the %s already holds the maximum of %d values", strings.ReplaceAll(string(s.Kind()), "_", " "), structure.MaxArrayLen)
	}

	switch v := s.(type) {
	case *structure.Array:
		return validateArray(op, v, p)
	case *structure.LinkedList:
		if op == "insert" && p.Index != nil {
			if i := *p.Index; i < 0 || i > n {
				return invalid(op, "index", "position %d is outside 0..%d", i, n)
			}
		}
	case *structure.Graph:
		return validateGraph(op, v, p)
	case *structure.BinaryTree:
		return validateTree(op, v)
	case *structure.HashTable:
		if len(v.Buckets) == 0 {
			return invalid(op, "structure", "the hash table has no buckets")
		}
	}
	return nil
}

func validateArray(op string, a *structure.Array, p algo.Params) error {
	n := len(a.Values)
	if n > structure.MaxArrayLen {
		return invalid(op, "structure", "arrays are limited to %d values", structure.MaxArrayLen)
	}
	switch op {
	case "add":
		if p.Index != nil && (*p.Index < 0 || *p.Index > n) {
			return invalid(op, "index", "index %d is outside 0..%d", *p.Index, n)
		}
	case "remove":
		if i := *p.Index; i < 0 || i >= n {
			return invalid(op, "index", "index %d is outside 0..%d", i, n-1)
		}
	case "binary_search":
		if !algo.IsSorted(a.Values) {
			return invalid(op, "structure", "binary search needs a sorted array")
		}
	case "sliding_window":
		if n == 0 {
			return invalid(op, "structure", "the array is empty")
		}
		if p.Window < 1 || p.Window > n {
			return invalid(op, "window", "window size must be between 1 and %d", n)
		}
	}
	return nil
}

func validateGraph(op string, g *structure.Graph, p algo.Params) error {
	n := len(g.Nodes)
	if n == 0 {
		return invalid(op, "structure", "the graph has no nodes")
	}
	if n > MaxGraphNodes {
		return invalid(op, "structure", "graphs are limited to %d nodes", MaxGraphNodes)
	}
	for i, node := range g.Nodes {
		if node.ID != i {
			return invalid(op, "structure", "node ids must run 0..%d", n-1)
		}
	}
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			return invalid(op, "structure", "edge %d-%d references a missing node", e.Source, e.Target)
		}
		if e.Weight < 0 {
			return invalid(op, "structure", "edge %d-%d has a negative weight", e.Source, e.Target)
		}
	}
	if p.Start != nil && !g.HasNode(*p.Start) {
		return invalid(op, "start", "start node %d does not exist", *p.Start)
	}
	if p.Target != nil && !g.HasNode(*p.Target) {
		return invalid(op, "target", "target node %d does not exist", *p.Target)
	}
	return nil
}

// validateTree rejects node tables that are not a single tree. Parsed trees
// share the array cap, so that is the node limit here too.
func validateTree(op string, t *structure.BinaryTree) error {
	if len(t.Nodes) > structure.MaxArrayLen {
		return invalid(op, "structure", "trees are limited to %d nodes", structure.MaxArrayLen)
	}
	if err := t.Check(); err != nil {
		return invalid(op, "structure", "%s", strings.TrimPrefix(err.Error(), "structure: "))
	}
	return nil
}

func param(p algo.Params, name string) *int {
	switch name {
	case "value":
		return p.Value
	case "index":
		return p.Index
	case "start":
		return p.Start
	case "target":
		return p.Target
	}
	return nil
}
