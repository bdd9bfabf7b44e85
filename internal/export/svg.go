// Package export draws single trace steps as standalone SVG images.
package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

const background = "#0a0a0a"

// StepSVG renders st at width x height pixels. Graph and tree snapshots are
// drawn as nodes and edges; linear structures as a bar chart.
func StepSVG(st trace.Step, theme viz.Theme, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)
	switch {
	case st.Graph != nil:
		nodes := make([]point, len(st.Graph.Nodes))
		for i, n := range st.Graph.Nodes {
			nodes[i] = point{id: n.ID, x: n.X, y: n.Y, text: n.Label, status: n.Status}
		}
		network(&sb, theme, nodes, st.Graph.Edges, width, height, true)
	case st.Tree != nil:
		nodes := make([]point, len(st.Tree.Nodes))
		for i, n := range st.Tree.Nodes {
			nodes[i] = point{id: n.ID, x: n.X, y: n.Y, text: fmt.Sprint(n.Value), status: n.Status}
		}
		network(&sb, theme, nodes, st.Tree.Edges, width, height, false)
	default:
		bars(&sb, theme, st.Elements, width, height)
	}
	fmt.Fprintf(&sb, `<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, height-8, theme.Muted, html.EscapeString(st.Description))
	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasSVG converts a Braille canvas to SVG, one circle per set dot.
func CanvasSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}
	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, int(width), int(height))
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", theme.Primary)

	// bit of each dot in a 2x4 braille cell
	pixelMap := [4][2]rune{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	r := scale * 0.4
	for row := range canvas.Height {
		for col := range canvas.Width {
			pattern := canvas.Grid[row][col] - 0x2800
			if pattern <= 0 {
				continue
			}
			baseX, baseY := float64(col)*scale*2, float64(row)*scale*4
			for dy := range 4 {
				for dx := range 2 {
					if pattern&pixelMap[dy][dx] != 0 {
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
							baseX+float64(dx)*scale+scale/2, baseY+float64(dy)*scale+scale/2, r)
					}
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

type point struct {
	id     int
	x, y   float64
	text   string
	status trace.Status
}

// network scales node coordinates into the image, leaving a margin and room
// for the caption line.
func network(sb *strings.Builder, theme viz.Theme, nodes []point, edges []trace.GraphEdge, width, height int, weights bool) {
	if len(nodes) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		minX, maxX = math.Min(minX, n.x), math.Max(maxX, n.x)
		minY, maxY = math.Min(minY, n.y), math.Max(maxY, n.y)
	}
	spanX, spanY := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)
	const margin = 30.0
	pw, ph := float64(width)-2*margin, float64(height)-2*margin-20
	pos := make(map[int][2]float64, len(nodes))
	for _, n := range nodes {
		pos[n.id] = [2]float64{margin + (n.x-minX)/spanX*pw, margin + (n.y-minY)/spanY*ph}
	}

	for _, e := range edges {
		a, b := pos[e.Source], pos[e.Target]
		fmt.Fprintf(sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"2\"/>\n",
			a[0], a[1], b[0], b[1], edgeColor(theme, e.Status))
		if weights {
			fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"11\">%d</text>\n",
				(a[0]+b[0])/2+4, (a[1]+b[1])/2-4, theme.Muted, e.Weight)
		}
	}
	for _, n := range nodes {
		p := pos[n.id]
		fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"14\" fill=\"%s\" stroke=\"%s\" stroke-width=\"2\"/>\n",
			p[0], p[1], background, theme.StatusColor(n.status))
		fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\" text-anchor=\"middle\">%s</text>\n",
			p[0], p[1]+4, theme.StatusColor(n.status), html.EscapeString(n.text))
	}
}

func edgeColor(theme viz.Theme, st trace.Status) string {
	if st == trace.Default {
		return string(theme.Border)
	}
	return string(theme.StatusColor(st))
}

func bars(sb *strings.Builder, theme viz.Theme, elems []trace.Element, width, height int) {
	if len(elems) == 0 {
		return
	}
	top := 1
	for _, e := range elems {
		top = max(top, e.Value)
	}
	const margin = 20.0
	slot := (float64(width) - 2*margin) / float64(len(elems))
	maxH := float64(height) - 2*margin - 30
	for i, e := range elems {
		h := math.Max(float64(e.Value)/float64(top)*maxH, 2)
		x := margin + float64(i)*slot
		y := margin + maxH - h
		fmt.Fprintf(sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
			x+slot*0.1, y, slot*0.8, h, theme.StatusColor(e.Status))
		fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"11\" text-anchor=\"middle\">%d</text>\n",
			x+slot/2, margin+maxH+14, theme.Text, e.Value)
	}
}
