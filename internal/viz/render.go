package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// RenderStep draws one step of a kind k trace: the structure, any A* costs
// and the description.
func RenderStep(s Styles, k structure.Kind, st trace.Step, width int) string {
	var b strings.Builder
	switch {
	case st.Graph != nil:
		b.WriteString(DrawGraph(st.Graph, max(width/2, 20), 12).Render(s))
		if len(st.Costs) > 0 {
			b.WriteString(RenderCosts(s, st.Graph, st.Costs) + "\n")
		}
	case st.Tree != nil:
		b.WriteString(RenderTree(s, st.Tree) + "\n")
	case k == structure.KindHashTable:
		b.WriteString(RenderBuckets(s, st.Elements) + "\n")
	case k == structure.KindLinkedList:
		b.WriteString(RenderElements(s, st.Elements, " → ") + "\n")
	default:
		b.WriteString(RenderElements(s, st.Elements, " ") + "\n")
	}
	if len(st.Path) > 0 {
		b.WriteString(s.Subtle.Render(fmt.Sprintf("path: %v", st.Path)) + "\n")
	}
	b.WriteString("\n" + s.Selected.Render(st.Description))
	return b.String()
}

// RenderElements draws a row of boxed values joined by sep.
func RenderElements(s Styles, elems []trace.Element, sep string) string {
	if len(elems) == 0 {
		return s.Subtle.Render("(empty)")
	}
	cells := make([]string, len(elems))
	for i, e := range elems {
		cells[i] = s.Status(e.Status, fmt.Sprintf("[%d]", e.Value))
	}
	return strings.Join(cells, sep)
}

// RenderBuckets draws hash-table elements one bucket per line. Elements
// carry their bucket as a "[b]" label.
func RenderBuckets(s Styles, elems []trace.Element) string {
	var order []string
	rows := make(map[string][]trace.Element)
	for _, e := range elems {
		if _, ok := rows[e.Label]; !ok {
			order = append(order, e.Label)
		}
		rows[e.Label] = append(rows[e.Label], e)
	}
	if len(order) == 0 {
		return s.Subtle.Render("(empty)")
	}
	lines := make([]string, len(order))
	for i, lbl := range order {
		lines[i] = s.Subtle.Render(fmt.Sprintf("%5s ", lbl)) + RenderElements(s, rows[lbl], " → ")
	}
	return strings.Join(lines, "\n")
}

// RenderTree draws a tree snapshot one depth level per line, each node at
// the column given by its inorder position.
func RenderTree(s Styles, t *trace.TreeSnapshot) string {
	if t == nil || len(t.Nodes) == 0 {
		return s.Subtle.Render("(empty tree)")
	}
	const cell = 5
	byDepth := make(map[int][]trace.TreeNode)
	depth := 0
	for _, n := range t.Nodes {
		d := int(n.Y)
		byDepth[d] = append(byDepth[d], n)
		depth = max(depth, d)
	}
	lines := make([]string, 0, depth+1)
	for d := 0; d <= depth; d++ {
		nodes := byDepth[d]
		slices.SortFunc(nodes, func(a, b trace.TreeNode) int { return int(a.X - b.X) })
		var b strings.Builder
		col := 0
		for _, n := range nodes {
			at := int(n.X) * cell
			if at > col {
				b.WriteString(strings.Repeat(" ", at-col))
				col = at
			}
			text := fmt.Sprintf("%-*d", cell, n.Value)
			b.WriteString(s.Status(n.Status, text))
			col += len(text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// RenderCosts lists g, h and f for every node with known costs.
func RenderCosts(s Styles, g *trace.GraphSnapshot, costs map[int]trace.NodeCost) string {
	var parts []string
	for _, n := range g.Nodes {
		c, ok := costs[n.ID]
		if !ok {
			continue
		}
		parts = append(parts, s.Status(n.Status, fmt.Sprintf("%s g=%d h=%d f=%d", n.Label, c.G, c.H, c.F)))
	}
	return strings.Join(parts, s.Subtle.Render(" | "))
}

// RenderChart plots element values as a line chart.
func RenderChart(values []int, width int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(max(width, len(values))),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// RenderPseudocode lists pseudocode with line hl highlighted.
func RenderPseudocode(s Styles, lines []string, hl int) string {
	var b strings.Builder
	for i, l := range lines {
		if i == hl {
			b.WriteString(s.CodeLine.Render("▸ " + l))
		} else {
			b.WriteString(s.Code.Render("  " + l))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
