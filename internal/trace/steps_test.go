package trace

import (
	"errors"
	"testing"
)

func TestStep_CloneDoesNotAlias(t *testing.T) {
	orig := Step{
		Elements: []Element{{Value: 1, Status: Default}, {Value: 2, Status: Comparing}},
		Graph: &GraphSnapshot{
			Nodes: []GraphNode{{ID: 0, Status: Visited}},
			Edges: []GraphEdge{{Source: 0, Target: 1, Weight: 3}},
		},
		Costs: map[int]NodeCost{0: {G: 1, H: 2, F: 3}},
		Path:  []int{0, 1},
	}

	c := orig.Clone()
	c.Elements[0].Value = 99
	c.Graph.Nodes[0].Status = Current
	c.Costs[0] = NodeCost{}
	c.Path[0] = 7

	if orig.Elements[0].Value != 1 {
		t.Error("elements aliased")
	}
	if orig.Graph.Nodes[0].Status != Visited {
		t.Error("graph snapshot aliased")
	}
	if orig.Costs[0].F != 3 {
		t.Error("costs aliased")
	}
	if orig.Path[0] != 0 {
		t.Error("path aliased")
	}
}

func TestBuilder_PushClones(t *testing.T) {
	b := NewBuilder(4)
	buf := ElementsOf([]int{3, 1, 2})

	b.Elements(buf, 0, "initial")
	buf[0].Value = 42
	buf[0].Status = Swapping
	b.Elements(buf, 1, "changed")

	steps := b.Steps()
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Elements[0].Value != 3 || steps[0].Elements[0].Status != Default {
		t.Errorf("first step mutated: %+v", steps[0].Elements[0])
	}
	if steps[1].Elements[0].Value != 42 {
		t.Errorf("second step = %+v", steps[1].Elements[0])
	}
}

func TestStatus_Transient(t *testing.T) {
	tests := []struct {
		status    Status
		transient bool
	}{
		{Default, false},
		{Comparing, true},
		{Swapping, true},
		{Sorted, false},
		{Pivot, true},
		{Found, false},
		{Visiting, true},
		{Visited, false},
		{Current, true},
		{Path, false},
		{Window, true},
		{Optimal, false},
		{Final, false},
	}

	for _, tt := range tests {
		if got := tt.status.Transient(); got != tt.transient {
			t.Errorf("%s.Transient() = %v, want %v", tt.status, got, tt.transient)
		}
	}
}

func TestSteps_Validate(t *testing.T) {
	if err := Steps(nil).Validate(); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("empty: want ErrEmptyTrace, got %v", err)
	}

	dangling := Steps{{Elements: []Element{{Value: 1, Status: Comparing}}}}
	if err := dangling.Validate(); !errors.Is(err, ErrDanglingStatus) {
		t.Errorf("dangling: want ErrDanglingStatus, got %v", err)
	}

	graph := Steps{{Graph: &GraphSnapshot{Edges: []GraphEdge{{Status: Visiting}}}}}
	if err := graph.Validate(); !errors.Is(err, ErrDanglingStatus) {
		t.Errorf("graph edge: want ErrDanglingStatus, got %v", err)
	}

	ok := Steps{{Elements: []Element{{Value: 1, Status: Sorted}}}}
	if err := ok.Validate(); err != nil {
		t.Errorf("terminal trace rejected: %v", err)
	}
}

func TestSteps_Fingerprint(t *testing.T) {
	a := Steps{{Elements: ElementsOf([]int{1, 2}), Description: "x"}}
	b := a.Clone()

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Error("equal traces have different fingerprints")
	}

	b[0].Elements[1].Status = Found
	fc, _ := b.Fingerprint()
	if fa == fc {
		t.Error("status change did not change fingerprint")
	}
}

func TestSteps_AllStopsEarly(t *testing.T) {
	s := Steps{{Description: "a"}, {Description: "b"}, {Description: "c"}}
	seen := 0
	for i := range s.All() {
		seen++
		if i == 1 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("expected 2 yields, got %d", seen)
	}
}
