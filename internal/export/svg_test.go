package export

import (
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

func TestStepSVG_Elements(t *testing.T) {
	st := trace.Step{
		Elements: []trace.Element{
			{Value: 3, Status: trace.Comparing},
			{Value: 1, Status: trace.Default},
			{Value: 2, Status: trace.Sorted},
		},
		Description: "Compare 3 & 1",
	}
	out := StepSVG(st, viz.ThemeDefault, 300, 200)

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("not a complete svg document")
	}
	if got := strings.Count(out, "<rect "); got != 4 {
		t.Errorf("expected background + 3 bars, got %d rects", got)
	}
	if !strings.Contains(out, string(viz.ThemeDefault.StatusColor(trace.Comparing))) {
		t.Error("comparing color missing")
	}
	if !strings.Contains(out, "Compare 3 &amp; 1") {
		t.Error("description should be escaped")
	}
}

func TestStepSVG_Graph(t *testing.T) {
	st := trace.Step{
		Graph: &trace.GraphSnapshot{
			Nodes: []trace.GraphNode{
				{ID: 0, Label: "A", X: 0, Y: 0, Status: trace.Visited},
				{ID: 1, Label: "B", X: 10, Y: 0, Status: trace.Current},
				{ID: 2, Label: "C", X: 5, Y: 8, Status: trace.Default},
			},
			Edges: []trace.GraphEdge{
				{Source: 0, Target: 1, Weight: 4, Status: trace.Path},
				{Source: 1, Target: 2, Weight: 7, Status: trace.Default},
			},
		},
	}
	out := StepSVG(st, viz.ThemeMinimal, 400, 300)

	if got := strings.Count(out, "<circle "); got != 3 {
		t.Errorf("expected 3 nodes, got %d", got)
	}
	if got := strings.Count(out, "<line "); got != 2 {
		t.Errorf("expected 2 edges, got %d", got)
	}
	for _, w := range []string{">4</text>", ">7</text>", ">A</text>"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q", w)
		}
	}
}

func TestStepSVG_TreeHasNoWeights(t *testing.T) {
	st := trace.Step{
		Tree: &trace.TreeSnapshot{
			Root: 0,
			Nodes: []trace.TreeNode{
				{ID: 0, Value: 5, Left: 1, Right: -1, X: 1, Y: 0},
				{ID: 1, Value: 2, Left: -1, Right: -1, X: 0, Y: 1},
			},
			Edges: []trace.GraphEdge{{Source: 0, Target: 1, Weight: 9}},
		},
	}
	out := StepSVG(st, viz.ThemeDefault, 200, 200)
	if strings.Contains(out, ">9</text>") {
		t.Error("tree edges should not show weights")
	}
	if !strings.Contains(out, ">5</text>") || !strings.Contains(out, ">2</text>") {
		t.Error("node values missing")
	}
}

func TestCanvasSVG(t *testing.T) {
	if CanvasSVG(nil, viz.ThemeDefault, 2) != "" {
		t.Error("nil canvas should produce nothing")
	}
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, trace.Default)
	c.Set(3, 3, trace.Default)
	out := CanvasSVG(c, viz.ThemeDefault, 2)
	if got := strings.Count(out, "<circle "); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(out, `width="8" height="8"`) {
		t.Errorf("unexpected size in %q", out)
	}
}
