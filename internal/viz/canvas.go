package viz

import (
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/trace"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille pixel grid. Each cell remembers the status of the
// strongest line drawn through it, and labels can be placed over cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	status        [][]trace.Status
	labels        map[[2]int]label
}

type label struct {
	text   string
	status trace.Status
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		status: make([][]trace.Status, h),
		labels: make(map[[2]int]label),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.status[i] = make([]trace.Status, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.status[i][j] = trace.Default
		}
	}
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int, st trace.Status) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if st != trace.Default {
		c.status[row][col] = st
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, st trace.Status) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, st)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Label places text over the cells starting at (col, row).
func (c *Canvas) Label(col, row int, text string, st trace.Status) {
	if row < 0 || row >= c.Height {
		return
	}
	col = min(max(col, 0), max(c.Width-len(text), 0))
	c.labels[[2]int{col, row}] = label{text: text, status: st}
}

func (c *Canvas) String() string {
	return c.render(func(_ trace.Status, s string) string { return s })
}

// Render draws the canvas with cells colored by status.
func (c *Canvas) Render(s Styles) string {
	return c.render(s.Status)
}

func (c *Canvas) render(paint func(trace.Status, string) string) string {
	var b strings.Builder
	for row := range c.Grid {
		for col := 0; col < c.Width; col++ {
			if l, ok := c.labels[[2]int{col, row}]; ok {
				b.WriteString(paint(l.status, l.text))
				col += len(l.text) - 1
				continue
			}
			b.WriteString(paint(c.status[row][col], string(c.Grid[row][col])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DrawGraph lays a graph snapshot onto a new w x h canvas, scaling node
// coordinates to fit.
func DrawGraph(g *trace.GraphSnapshot, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if g == nil || len(g.Nodes) == 0 {
		return c
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range g.Nodes {
		minX, maxX = math.Min(minX, n.X), math.Max(maxX, n.X)
		minY, maxY = math.Min(minY, n.Y), math.Max(maxY, n.Y)
	}
	spanX, spanY := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)
	pw, ph := float64(w*2-4), float64(h*4-4)
	pos := make(map[int][2]int, len(g.Nodes))
	for _, n := range g.Nodes {
		pos[n.ID] = [2]int{
			2 + int((n.X-minX)/spanX*pw),
			2 + int((n.Y-minY)/spanY*ph),
		}
	}

	for _, e := range g.Edges {
		a, b := pos[e.Source], pos[e.Target]
		c.DrawLine(a[0], a[1], b[0], b[1], e.Status)
	}
	for _, n := range g.Nodes {
		p := pos[n.ID]
		c.Label(p[0]/2, p[1]/4, n.Label, n.Status)
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
