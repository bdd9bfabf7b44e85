// Package random builds example structures. It is the only source of
// randomness in the module; a Generator with a fixed seed always produces
// the same examples.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/san-kum/algoviz/internal/structure"
)

type Options struct {
	MinValue   int `yaml:"min_value"`
	MaxValue   int `yaml:"max_value"`
	ArraySize  int `yaml:"array_size"`
	GraphNodes int `yaml:"graph_nodes"`
	ExtraEdges int `yaml:"extra_edges"`
	MaxWeight  int `yaml:"max_weight"`
	TreeDepth  int `yaml:"tree_depth"`
	// StopProbability is the chance that a non-root subtree is left empty.
	StopProbability float64 `yaml:"stop_probability"`
	Buckets         int     `yaml:"buckets"`
}

func DefaultOptions() Options {
	return Options{
		MinValue:        1,
		MaxValue:        99,
		ArraySize:       10,
		GraphNodes:      7,
		ExtraEdges:      3,
		MaxWeight:       9,
		TreeDepth:       3,
		StopProbability: 0.3,
		Buckets:         structure.DefaultBuckets,
	}
}

// Limits that keep generated examples within what a single frame can trace.
const (
	MaxGraphNodes = 12
	MaxTreeNodes  = 15
)

type Generator struct {
	rng  *rand.Rand
	opts Options
}

func New(seed uint64, opts Options) *Generator {
	def := DefaultOptions()
	if opts.MaxValue <= opts.MinValue {
		opts.MinValue, opts.MaxValue = def.MinValue, def.MaxValue
	}
	if opts.ArraySize <= 0 {
		opts.ArraySize = def.ArraySize
	}
	opts.ArraySize = min(opts.ArraySize, structure.MaxArrayLen)
	if opts.GraphNodes <= 0 {
		opts.GraphNodes = def.GraphNodes
	}
	opts.GraphNodes = min(opts.GraphNodes, MaxGraphNodes)
	if opts.ExtraEdges < 0 {
		opts.ExtraEdges = 0
	}
	if opts.MaxWeight <= 0 {
		opts.MaxWeight = def.MaxWeight
	}
	if opts.TreeDepth <= 0 {
		opts.TreeDepth = def.TreeDepth
	}
	if opts.StopProbability < 0 || opts.StopProbability >= 1 {
		opts.StopProbability = def.StopProbability
	}
	if opts.Buckets <= 0 {
		opts.Buckets = def.Buckets
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), opts: opts}
}

func (g *Generator) Options() Options { return g.opts }

func (g *Generator) value() int {
	return g.opts.MinValue + g.rng.IntN(g.opts.MaxValue-g.opts.MinValue+1)
}

// Array returns n uniform values in [MinValue, MaxValue]. n <= 0 uses the
// configured size.
func (g *Generator) Array(n int) []int {
	if n <= 0 {
		n = g.opts.ArraySize
	}
	n = min(n, structure.MaxArrayLen)
	out := make([]int, n)
	for i := range out {
		out[i] = g.value()
	}
	return out
}

func (g *Generator) SortedArray(n int) []int {
	out := g.Array(n)
	slices.Sort(out)
	return out
}

// distinctSorted returns n distinct sorted values, falling back to repeats
// when the value range is narrower than n.
func (g *Generator) distinctSorted(n int) []int {
	span := g.opts.MaxValue - g.opts.MinValue + 1
	if span < n {
		return g.SortedArray(n)
	}
	seen := make(map[int]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		if v := g.value(); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Label names node i: A..Z, then A1, B1, ...
func Label(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%c%d", 'A'+i%26, i/26)
}

// Graph returns a connected weighted graph on n nodes laid out on a circle.
// A random spanning tree comes first; up to ExtraEdges further edges are
// added, skipping duplicates. Every weight is at least the edge's length in
// tenths, so straight-line distance never overestimates cost.
func (g *Generator) Graph(n int) *structure.Graph {
	if n <= 0 {
		n = g.opts.GraphNodes
	}
	n = min(n, MaxGraphNodes)

	gr := &structure.Graph{Nodes: make([]structure.GraphNode, n)}
	const cx, cy, r = 50.0, 50.0, 40.0
	for i := range gr.Nodes {
		a := 2 * math.Pi * float64(i) / float64(n)
		gr.Nodes[i] = structure.GraphNode{
			ID:    i,
			Label: Label(i),
			X:     math.Round((cx+r*math.Cos(a))*10) / 10,
			Y:     math.Round((cy+r*math.Sin(a))*10) / 10,
		}
	}

	order := g.rng.Perm(n)
	for i := 1; i < n; i++ {
		g.addEdge(gr, order[g.rng.IntN(i)], order[i])
	}

	maxExtra := n*(n-1)/2 - (n - 1)
	extra := min(g.opts.ExtraEdges, maxExtra)
	for added, tries := 0, 0; added < extra && tries < 20*extra; tries++ {
		a, b := g.rng.IntN(n), g.rng.IntN(n)
		if a == b || gr.HasEdge(a, b) {
			continue
		}
		g.addEdge(gr, a, b)
		added++
	}
	return gr
}

func (g *Generator) addEdge(gr *structure.Graph, a, b int) {
	na, nb := gr.Nodes[a], gr.Nodes[b]
	length := math.Hypot(na.X-nb.X, na.Y-nb.Y)
	w := int(math.Ceil(length/10)) + g.rng.IntN(g.opts.MaxWeight)
	w = max(w, 1)
	if a > b {
		a, b = b, a
	}
	gr.Edges = append(gr.Edges, structure.GraphEdge{Source: a, Target: b, Weight: w})
}

// Tree grows a random shape to at most TreeDepth levels below the root, each
// non-root subtree stopping early with StopProbability. Values are then
// assigned in inorder from a sorted draw, so the result is a binary search
// tree. An empty draw falls back to a single node.
func (g *Generator) Tree() *structure.BinaryTree {
	t := &structure.BinaryTree{Root: -1}
	t.Root = g.grow(t, 0)
	if t.Root == -1 {
		t.Nodes = append(t.Nodes, structure.TreeNode{ID: 0, Left: -1, Right: -1})
		t.Root = 0
	}

	order := inorder(t, t.Root, nil)
	values := g.distinctSorted(len(order))
	for i, id := range order {
		t.Nodes[id].Value = values[i]
	}
	return t
}

func (g *Generator) grow(t *structure.BinaryTree, depth int) int {
	if depth > g.opts.TreeDepth || len(t.Nodes) >= MaxTreeNodes {
		return -1
	}
	if depth > 0 && g.rng.Float64() < g.opts.StopProbability {
		return -1
	}
	id := len(t.Nodes)
	t.Nodes = append(t.Nodes, structure.TreeNode{ID: id, Left: -1, Right: -1})
	left := g.grow(t, depth+1)
	right := g.grow(t, depth+1)
	t.Nodes[id].Left, t.Nodes[id].Right = left, right
	return id
}

// inorder relies on ids equalling positions, which grow guarantees.
func inorder(t *structure.BinaryTree, id int, acc []int) []int {
	if id < 0 {
		return acc
	}
	acc = inorder(t, t.Nodes[id].Left, acc)
	acc = append(acc, id)
	return inorder(t, t.Nodes[id].Right, acc)
}

func (g *Generator) LinkedList(n int) *structure.LinkedList {
	return structure.NewLinkedList(g.Array(n))
}

func (g *Generator) Stack(n int) *structure.Stack {
	return &structure.Stack{Values: g.Array(n)}
}

func (g *Generator) Queue(n int) *structure.Queue {
	return &structure.Queue{Values: g.Array(n)}
}

func (g *Generator) HashTable(n int) *structure.HashTable {
	h := structure.NewHashTable(g.opts.Buckets)
	for _, v := range g.Array(n) {
		b := h.Bucket(v)
		h.Buckets[b] = append(h.Buckets[b], v)
	}
	return h
}

// For returns a random example of kind k. n <= 0 uses the configured size.
func (g *Generator) For(k structure.Kind, n int) (structure.Structure, error) {
	switch k {
	case structure.KindArray:
		return &structure.Array{Values: g.Array(n)}, nil
	case structure.KindLinkedList:
		return g.LinkedList(n), nil
	case structure.KindStack:
		return g.Stack(n), nil
	case structure.KindQueue:
		return g.Queue(n), nil
	case structure.KindBinaryTree:
		return g.Tree(), nil
	case structure.KindHashTable:
		return g.HashTable(n), nil
	case structure.KindGraph:
		return g.Graph(n), nil
	}
	return nil, fmt.Errorf("%w: %q", structure.ErrUnknownKind, k)
}
