package algo

import (
	"container/heap"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// graphView is the mutable working copy a graph generator records from.
type graphView struct {
	g     *structure.Graph
	snap  *trace.GraphSnapshot
	adj   [][]structure.Neighbor
	order []int
}

func newGraphView(g *structure.Graph) *graphView {
	snap := &trace.GraphSnapshot{
		Nodes: make([]trace.GraphNode, len(g.Nodes)),
		Edges: make([]trace.GraphEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		snap.Nodes[i] = trace.GraphNode{ID: n.ID, Label: nodeLabel(n), X: n.X, Y: n.Y, Status: trace.Default}
	}
	for i, e := range g.Edges {
		snap.Edges[i] = trace.GraphEdge{Source: e.Source, Target: e.Target, Weight: e.Weight, Status: trace.Default}
	}
	return &graphView{g: g, snap: snap, adj: g.Adjacency()}
}

func nodeLabel(n structure.GraphNode) string {
	if n.Label != "" {
		return n.Label
	}
	return fmt.Sprint(n.ID)
}

func (v *graphView) label(id int) string { return v.snap.Nodes[id].Label }

func (v *graphView) node(id int, st trace.Status) { v.snap.Nodes[id].Status = st }

func (v *graphView) edge(a, b int, st trace.Status) {
	for i := range v.snap.Edges {
		if v.snap.Edges[i].Connects(a, b) {
			v.snap.Edges[i].Status = st
			return
		}
	}
}

// settle clears transient statuses ahead of a terminal step.
func (v *graphView) settle() {
	for i := range v.snap.Nodes {
		if v.snap.Nodes[i].Status.Transient() {
			v.snap.Nodes[i].Status = trace.Default
		}
	}
	for i := range v.snap.Edges {
		if v.snap.Edges[i].Status.Transient() {
			v.snap.Edges[i].Status = trace.Default
		}
	}
}

func (v *graphView) push(b *trace.Builder, costs map[int]trace.NodeCost, line int, format string, args ...any) {
	el := make([]trace.Element, len(v.order))
	for i, id := range v.order {
		el[i] = trace.Element{Value: id, Status: trace.Visited, Label: v.label(id)}
	}
	b.Push(trace.Step{
		Elements:    el,
		Graph:       v.snap,
		Costs:       costs,
		Description: fmt.Sprintf(format, args...),
		LineIndex:   line,
	})
}

func (v *graphView) labels(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = v.label(id)
	}
	return strings.Join(parts, ", ")
}

// finishPath records the terminal step of a path search.
func (v *graphView) finishPath(b *trace.Builder, path []int, costs map[int]trace.NodeCost, line int, format string, args ...any) {
	v.settle()
	for i, id := range path {
		v.node(id, trace.Path)
		if i > 0 {
			v.edge(path[i-1], id, trace.Path)
		}
	}
	el := make([]trace.Element, len(path))
	for i, id := range path {
		el[i] = trace.Element{Value: id, Status: trace.Path, Label: v.label(id)}
	}
	b.Push(trace.Step{
		Elements:    el,
		Graph:       v.snap,
		Costs:       costs,
		Path:        path,
		Description: fmt.Sprintf(format, args...),
		LineIndex:   line,
	})
}

func reconstruct(prev []int, target int) []int {
	var rev []int
	for at := target; at != -1; at = prev[at] {
		rev = append(rev, at)
	}
	path := make([]int, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

func emptyGraph(b *trace.Builder, v *graphView) trace.Steps {
	v.push(b, nil, trace.NoLine, "Graph is empty; nothing to traverse")
	return b.Steps()
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// BFS visits nodes in breadth-first order from start. A target >= 0 turns
// it into a shortest (fewest edges) path search.
func BFS(g *structure.Graph, start, target int) trace.Steps {
	v := newGraphView(g)
	n := len(g.Nodes)
	b := trace.NewBuilder(2*n + 3)
	if n == 0 {
		return emptyGraph(b, v)
	}
	v.push(b, nil, trace.NoLine, "Initial graph")

	visited := make([]bool, n)
	parent := filled(n, -1)
	queue := []int{start}
	visited[start] = true
	v.node(start, trace.Visiting)
	v.push(b, nil, 0, "Enqueue start node %s", v.label(start))

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		v.node(u, trace.Current)
		v.order = append(v.order, u)

		if u == target {
			path := reconstruct(parent, target)
			v.node(u, trace.Visited)
			v.finishPath(b, path, nil, 4, "Reached %s. Path: %s (%d edges)", v.label(u), v.labels(path), len(path)-1)
			return b.Steps()
		}

		var found []int
		for _, nb := range v.adj[u] {
			if visited[nb.ID] {
				continue
			}
			visited[nb.ID] = true
			parent[nb.ID] = u
			v.node(nb.ID, trace.Visiting)
			v.edge(u, nb.ID, trace.Visited)
			queue = append(queue, nb.ID)
			found = append(found, nb.ID)
		}
		if len(found) > 0 {
			v.push(b, nil, 3, "Dequeue %s; enqueue unvisited neighbours %s", v.label(u), v.labels(found))
		} else {
			v.push(b, nil, 2, "Dequeue %s; no unvisited neighbours", v.label(u))
		}
		v.node(u, trace.Visited)
	}

	v.settle()
	if target >= 0 {
		v.push(b, nil, 5, "Queue exhausted; no path from %s to %s", v.label(start), v.label(target))
		return b.Steps()
	}
	v.push(b, nil, 5, "BFS complete. Visit order: %s", v.labels(v.order))
	return b.Steps()
}

// DFS visits nodes depth first using an explicit stack. Neighbours are
// pushed in descending id order so the lowest id is explored first.
func DFS(g *structure.Graph, start, target int) trace.Steps {
	v := newGraphView(g)
	n := len(g.Nodes)
	b := trace.NewBuilder(2*n + 3)
	if n == 0 {
		return emptyGraph(b, v)
	}
	v.push(b, nil, trace.NoLine, "Initial graph")

	visited := make([]bool, n)
	parent := filled(n, -1)
	stack := []int{start}
	v.node(start, trace.Visiting)
	v.push(b, nil, 0, "Push start node %s", v.label(start))

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		v.node(u, trace.Current)
		if parent[u] >= 0 {
			v.edge(parent[u], u, trace.Visited)
		}
		v.order = append(v.order, u)

		if u == target {
			path := reconstruct(parent, target)
			v.node(u, trace.Visited)
			v.finishPath(b, path, nil, 4, "Reached %s. Path: %s", v.label(u), v.labels(path))
			return b.Steps()
		}

		var pushed []int
		for i := len(v.adj[u]) - 1; i >= 0; i-- {
			nb := v.adj[u][i].ID
			if visited[nb] {
				continue
			}
			parent[nb] = u
			v.node(nb, trace.Visiting)
			stack = append(stack, nb)
			pushed = append(pushed, nb)
		}
		if len(pushed) > 0 {
			v.push(b, nil, 3, "Visit %s; push %s", v.label(u), v.labels(pushed))
		} else {
			v.push(b, nil, 2, "Visit %s; dead end, backtrack", v.label(u))
		}
		v.node(u, trace.Visited)
	}

	v.settle()
	if target >= 0 {
		v.push(b, nil, 5, "Stack exhausted; no path from %s to %s", v.label(start), v.label(target))
		return b.Steps()
	}
	v.push(b, nil, 5, "DFS complete. Visit order: %s", v.labels(v.order))
	return b.Steps()
}

type pqItem struct {
	id, g, h int
}

// frontier is a min-heap on f = g + h, ties broken by h then id so runs are
// reproducible.
type frontier []pqItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	fi, fj := f[i].g+f[i].h, f[j].g+f[j].h
	if fi != fj {
		return fi < fj
	}
	if f[i].h != f[j].h {
		return f[i].h < f[j].h
	}
	return f[i].id < f[j].id
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(pqItem)) }
func (f *frontier) Pop() any {
	old := *f
	it := old[len(old)-1]
	*f = old[:len(old)-1]
	return it
}

// Dijkstra settles nodes in order of distance from start. With target >= 0
// it stops once the target is settled and reports the path.
func Dijkstra(g *structure.Graph, start, target int) trace.Steps {
	return bestFirst(g, start, target, false)
}

// AStar is Dijkstra guided by a straight-line heuristic towards target.
func AStar(g *structure.Graph, start, target int) trace.Steps {
	return bestFirst(g, start, target, true)
}

// heuristicScale is the largest factor r such that r times the Euclidean
// length of every edge stays at or below its weight. Scaling distances by r
// keeps the heuristic admissible for any weights.
func heuristicScale(g *structure.Graph) float64 {
	r := math.Inf(1)
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			continue
		}
		a, b := g.Nodes[e.Source], g.Nodes[e.Target]
		d := math.Hypot(a.X-b.X, a.Y-b.Y)
		if d == 0 {
			continue
		}
		if s := float64(e.Weight) / d; s < r {
			r = s
		}
	}
	if math.IsInf(r, 1) || r < 0 {
		return 0
	}
	return r
}

func bestFirst(g *structure.Graph, start, target int, guided bool) trace.Steps {
	v := newGraphView(g)
	n := len(g.Nodes)
	b := trace.NewBuilder(2*n + 3)
	if n == 0 {
		return emptyGraph(b, v)
	}
	name := "Dijkstra"
	if guided {
		name = "A*"
	}

	scale := 0.0
	if guided && target >= 0 {
		scale = heuristicScale(g)
	}
	h := func(id int) int {
		if scale == 0 {
			return 0
		}
		a, t := g.Nodes[id], g.Nodes[target]
		return int(math.Floor(scale * math.Hypot(a.X-t.X, a.Y-t.Y)))
	}

	const inf = math.MaxInt
	dist := filled(n, inf)
	prev := filled(n, -1)
	closed := make([]bool, n)
	costs := make(map[int]trace.NodeCost, n)

	v.push(b, nil, trace.NoLine, "Initial graph")

	dist[start] = 0
	costs[start] = trace.NodeCost{G: 0, H: h(start), F: h(start)}
	pq := &frontier{{id: start, g: 0, h: h(start)}}
	v.node(start, trace.Visiting)
	v.push(b, costs, 0, "%s: start at %s with distance 0", name, v.label(start))

	for pq.Len() > 0 {
		it := heap.Pop(pq).(pqItem)
		u := it.id
		if closed[u] || it.g != dist[u] {
			continue
		}
		closed[u] = true
		v.node(u, trace.Current)
		if prev[u] >= 0 {
			v.edge(prev[u], u, trace.Visited)
		}
		v.order = append(v.order, u)

		if u == target {
			path := reconstruct(prev, target)
			v.node(u, trace.Visited)
			v.finishPath(b, path, costs, 5, "%s reached %s. Path: %s, cost %d", name, v.label(u), v.labels(path), dist[u])
			return b.Steps()
		}

		var updates []string
		for _, nb := range v.adj[u] {
			if closed[nb.ID] {
				continue
			}
			alt := dist[u] + nb.Weight
			if alt >= dist[nb.ID] {
				continue
			}
			dist[nb.ID] = alt
			prev[nb.ID] = u
			hv := h(nb.ID)
			costs[nb.ID] = trace.NodeCost{G: alt, H: hv, F: alt + hv}
			heap.Push(pq, pqItem{id: nb.ID, g: alt, h: hv})
			v.node(nb.ID, trace.Visiting)
			updates = append(updates, fmt.Sprintf("%s=%d", v.label(nb.ID), alt))
		}
		if len(updates) > 0 {
			v.push(b, costs, 3, "Settle %s (g=%d); relax %s", v.label(u), dist[u], strings.Join(updates, ", "))
		} else {
			v.push(b, costs, 2, "Settle %s (g=%d); no shorter routes", v.label(u), dist[u])
		}
		v.node(u, trace.Visited)
	}

	v.settle()
	if target >= 0 {
		v.push(b, costs, 6, "%s: no path from %s to %s", name, v.label(start), v.label(target))
		return b.Steps()
	}
	parts := make([]string, 0, n)
	for id := range dist {
		if dist[id] == inf {
			parts = append(parts, v.label(id)+"=∞")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", v.label(id), dist[id]))
	}
	v.push(b, costs, 6, "%s complete. Distances: %s", name, strings.Join(parts, ", "))
	return b.Steps()
}
