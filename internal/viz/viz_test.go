package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestPlayer_PlaysToCompletion(t *testing.T) {
	p, err := NewPlayer(PlayerConfig{
		Kind:      structure.KindArray,
		Operation: "bubble_sort",
		Input:     "3, 1, 2",
		Interval:  time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	msgs := collect(p.Init())
	if p.Controller().State() != player.Playing {
		t.Fatalf("expected playing, got %s", p.Controller().State())
	}
	for i := 0; len(msgs) > 0 && i < 100; i++ {
		_, cmd := p.Update(msgs[0])
		msgs = append(msgs[1:], collect(cmd)...)
	}

	ctrl := p.Controller()
	if ctrl.State() != player.Completed {
		t.Errorf("expected completed, got %s", ctrl.State())
	}
	if ctrl.Index() != ctrl.Len()-1 {
		t.Errorf("expected last step, got %d of %d", ctrl.Index(), ctrl.Len())
	}
	if !strings.Contains(p.View(), "BUBBLE SORT") {
		t.Error("view missing title")
	}
}

func TestPlayer_StaleTickIgnored(t *testing.T) {
	p, err := NewPlayer(PlayerConfig{Kind: structure.KindStack, Operation: "push", Input: "1", Params: map[string]any{"value": 2}, Interval: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	p.Init()
	before := p.Controller().Index()
	p.Update(TickMsg{Token: player.Token{Generation: 0, Seq: 99}})
	if p.Controller().Index() != before {
		t.Error("stale token advanced playback")
	}
}

func TestPlayer_Keys(t *testing.T) {
	p, err := NewPlayer(PlayerConfig{Kind: structure.KindArray, Operation: "insertion_sort", Input: "4, 3, 2, 1", Interval: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	ctrl := p.Controller()

	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	if ctrl.Index() != 1 {
		t.Errorf("right: expected index 1, got %d", ctrl.Index())
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if ctrl.Index() != ctrl.Len()-1 {
		t.Error("end did not jump to last step")
	}
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if ctrl.Speed() != 2 {
		t.Errorf("expected speed 2, got %v", ctrl.Speed())
	}
	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	if p.notice == nil || p.notice.Title != "Reached the end" {
		t.Errorf("expected boundary notice, got %+v", p.notice)
	}
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit a standalone player")
	}
}

func TestNewPlayer_Errors(t *testing.T) {
	tests := []PlayerConfig{
		{Kind: structure.KindArray, Operation: "bogo_sort"},
		{Kind: structure.KindArray, Operation: "bubble_sort", Input: "1, x"},
		{Kind: structure.KindStack, Operation: "pop", Input: " "},
	}
	for _, cfg := range tests {
		if _, err := NewPlayer(cfg); err == nil {
			t.Errorf("%s %q: expected error", cfg.Operation, cfg.Input)
		}
	}
}

func TestDrawGraph(t *testing.T) {
	g := &trace.GraphSnapshot{
		Nodes: []trace.GraphNode{{ID: 0, Label: "A", X: 0, Y: 0}, {ID: 1, Label: "B", X: 100, Y: 100, Status: trace.Path}},
		Edges: []trace.GraphEdge{{Source: 0, Target: 1, Weight: 1, Status: trace.Path}},
	}
	out := DrawGraph(g, 20, 6).String()
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Errorf("labels missing:\n%s", out)
	}
	if strings.Count(out, "\n") != 6 {
		t.Errorf("expected 6 rows:\n%s", out)
	}
	if DrawGraph(nil, 4, 2).String() != strings.Repeat(strings.Repeat(string(rune(blank)), 4)+"\n", 2) {
		t.Error("nil graph should draw an empty canvas")
	}
}

func TestRenderTree(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	tree := &trace.TreeSnapshot{Root: 0, Nodes: []trace.TreeNode{
		{ID: 0, Value: 5, Left: 1, Right: -1, X: 1, Y: 0},
		{ID: 1, Value: 3, Left: -1, Right: -1, X: 0, Y: 1},
	}}
	out := RenderTree(s, tree)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per level, got %q", out)
	}
	if !strings.Contains(lines[0], "5") || !strings.Contains(lines[1], "3") {
		t.Errorf("unexpected layout %q", out)
	}
}

func TestRenderPseudocode(t *testing.T) {
	out := RenderPseudocode(NewStyles(ThemeDefault), []string{"a", "b"}, 1)
	if !strings.Contains(out, "▸ b") || strings.Contains(out, "▸ a") {
		t.Errorf("wrong highlight: %q", out)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "default" {
		t.Error("unknown theme should fall back to default")
	}
	seen := map[string]bool{}
	th := ThemeDefault
	for range Themes {
		seen[th.Name] = true
		th = nextTheme(th)
	}
	if len(seen) != len(Themes) {
		t.Errorf("cycling visited %d of %d themes", len(seen), len(Themes))
	}
}

func TestExplain(t *testing.T) {
	info, ok := algo.NewRegistry().Lookup(structure.KindGraph, "astar")
	if !ok {
		t.Fatal("astar not registered")
	}
	md := Explain(info)
	for _, want := range []string{"# A", "`target`", "`start` (optional)", "## Pseudocode", " 0  "} {
		if !strings.Contains(md, want) {
			t.Errorf("explanation missing %q:\n%s", want, md)
		}
	}

	render, err := NewMarkdownRenderer(60)
	if err != nil {
		t.Fatal(err)
	}
	out, err := render(md)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Pseudocode") {
		t.Error("rendered output lost the heading")
	}
}
