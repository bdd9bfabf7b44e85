package random

import (
	"slices"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/structure"
)

func TestGraph_AlwaysConnected(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		g := New(seed, DefaultOptions())
		for n := 1; n <= MaxGraphNodes; n++ {
			gr := g.Graph(n)
			if len(gr.Nodes) != n {
				t.Fatalf("seed %d: %d nodes, want %d", seed, len(gr.Nodes), n)
			}
			for _, walk := range []func(*structure.Graph, int, int) []int{bfsOrder, dfsOrder} {
				if got := walk(gr, 0, -1); len(got) != n {
					t.Fatalf("seed %d n %d: reached %d of %d nodes", seed, n, len(got), n)
				}
			}
		}
	}
}

func bfsOrder(g *structure.Graph, start, target int) []int {
	last, _ := algo.BFS(g, start, target).Last()
	return last.Values()
}

func dfsOrder(g *structure.Graph, start, target int) []int {
	last, _ := algo.DFS(g, start, target).Last()
	return last.Values()
}

func TestGraph_NoDuplicateEdges(t *testing.T) {
	opts := DefaultOptions()
	opts.ExtraEdges = 100
	for seed := uint64(0); seed < 10; seed++ {
		gr := New(seed, opts).Graph(8)
		seen := make(map[[2]int]bool)
		for _, e := range gr.Edges {
			if e.Source == e.Target {
				t.Fatalf("self loop on %d", e.Source)
			}
			k := [2]int{min(e.Source, e.Target), max(e.Source, e.Target)}
			if seen[k] {
				t.Fatalf("seed %d: duplicate edge %v", seed, k)
			}
			seen[k] = true
			if e.Weight < 1 {
				t.Errorf("edge %v weight %d", k, e.Weight)
			}
		}
		if len(gr.Edges) > 8*7/2 {
			t.Errorf("%d edges exceed a complete graph", len(gr.Edges))
		}
	}
}

func TestGraph_Capped(t *testing.T) {
	if n := len(New(1, DefaultOptions()).Graph(50).Nodes); n != MaxGraphNodes {
		t.Errorf("graph has %d nodes", n)
	}
}

func TestTree_IsBST(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		tr := New(seed, DefaultOptions()).Tree()
		if len(tr.Nodes) == 0 || tr.Root < 0 {
			t.Fatalf("seed %d: empty tree", seed)
		}
		if len(tr.Nodes) > MaxTreeNodes {
			t.Fatalf("seed %d: %d nodes", seed, len(tr.Nodes))
		}
		if err := tr.Check(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		last, _ := algo.Traverse(tr, algo.Inorder).Last()
		vals := last.Values()
		if len(vals) != len(tr.Nodes) {
			t.Fatalf("seed %d: inorder visited %d of %d", seed, len(vals), len(tr.Nodes))
		}
		if !slices.IsSorted(vals) {
			t.Errorf("seed %d: inorder not sorted: %v", seed, vals)
		}
	}
}

func TestTree_WideValueRange(t *testing.T) {
	opts := DefaultOptions()
	opts.MinValue, opts.MaxValue = 0, 1_000_000_000
	opts.StopProbability = 0.01
	tr := New(3, opts).Tree()
	last, _ := algo.Traverse(tr, algo.Inorder).Last()
	vals := last.Values()
	if len(vals) != len(tr.Nodes) {
		t.Fatalf("inorder visited %d of %d", len(vals), len(tr.Nodes))
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			t.Fatalf("values not distinct and sorted: %v", vals)
		}
	}
}

func TestTree_NarrowRangeFillsWithRepeats(t *testing.T) {
	opts := DefaultOptions()
	opts.MinValue, opts.MaxValue = 1, 2
	opts.StopProbability = 0.01
	tr := New(5, opts).Tree()
	if err := tr.Check(); err != nil {
		t.Fatal(err)
	}
	for _, n := range tr.Nodes {
		if n.Value < 1 || n.Value > 2 {
			t.Errorf("value %d outside 1..2", n.Value)
		}
	}
}

func TestTree_SingleNodeFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.TreeDepth = 1
	opts.StopProbability = 0.99
	for seed := uint64(0); seed < 5; seed++ {
		if tr := New(seed, opts).Tree(); len(tr.Nodes) < 1 {
			t.Fatal("no root")
		}
	}
}

func TestArray_BoundsAndDeterminism(t *testing.T) {
	opts := DefaultOptions()
	opts.MinValue, opts.MaxValue = 10, 20

	a := New(42, opts).Array(30)
	b := New(42, opts).Array(30)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different arrays")
	}
	for _, v := range a {
		if v < 10 || v > 20 {
			t.Fatalf("value %d outside [10, 20]", v)
		}
	}
	if n := len(New(1, opts).Array(100)); n != structure.MaxArrayLen {
		t.Errorf("array length %d not capped", n)
	}
	if s := New(3, opts).SortedArray(12); !slices.IsSorted(s) {
		t.Errorf("not sorted: %v", s)
	}
}

func TestFor_EveryKind(t *testing.T) {
	g := New(7, DefaultOptions())
	for _, k := range structure.Kinds() {
		s, err := g.For(k, 5)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if s.Kind() != k {
			t.Errorf("For(%s) returned %s", k, s.Kind())
		}
		if s.Len() == 0 {
			t.Errorf("%s example is empty", k)
		}
	}
	if _, err := g.For("matrix", 3); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestLabel(t *testing.T) {
	if Label(0) != "A" || Label(25) != "Z" || Label(26) != "A1" {
		t.Errorf("labels: %s %s %s", Label(0), Label(25), Label(26))
	}
}
