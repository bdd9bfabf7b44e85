package trace

import "fmt"

type Status string

const (
	Default   Status = "default"
	Comparing Status = "comparing"
	Swapping  Status = "swapping"
	Sorted    Status = "sorted"
	Pivot     Status = "pivot"
	Found     Status = "found"
	Visiting  Status = "visiting"
	Visited   Status = "visited"
	Current   Status = "current"
	Path      Status = "path"
	Added     Status = "added"
	Removing  Status = "removing"
	Outside   Status = "outside"
	Window    Status = "window"
	Optimal   Status = "optimal"
	Final     Status = "final"
)

var allStatuses = []Status{
	Default, Comparing, Swapping, Sorted, Pivot, Found, Visiting, Visited,
	Current, Path, Added, Removing, Outside, Window, Optimal, Final,
}

// Statuses returns every status in declaration order.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Transient reports whether s marks work in progress. Transient statuses
// must not survive into the last step of a trace.
func (s Status) Transient() bool {
	switch s {
	case Comparing, Swapping, Pivot, Visiting, Current, Removing, Window:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Element is one cell of a linear structure.
type Element struct {
	Value  int    `json:"value"`
	Status Status `json:"status"`
	Label  string `json:"label,omitempty"`
}

type GraphNode struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Status Status  `json:"status"`
}

type GraphEdge struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Weight int    `json:"weight"`
	Status Status `json:"status"`
}

// Connects reports whether the edge joins a and b in either direction.
func (e GraphEdge) Connects(a, b int) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

type GraphSnapshot struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

func (g *GraphSnapshot) Clone() *GraphSnapshot {
	if g == nil {
		return nil
	}
	c := &GraphSnapshot{
		Nodes: make([]GraphNode, len(g.Nodes)),
		Edges: make([]GraphEdge, len(g.Edges)),
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

// TreeNode is a node of a binary tree snapshot. Left and Right are node ids,
// -1 when absent.
type TreeNode struct {
	ID     int     `json:"id"`
	Value  int     `json:"value"`
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Status Status  `json:"status"`
}

type TreeSnapshot struct {
	Root  int         `json:"root"`
	Nodes []TreeNode  `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

func (t *TreeSnapshot) Clone() *TreeSnapshot {
	if t == nil {
		return nil
	}
	c := &TreeSnapshot{
		Root:  t.Root,
		Nodes: make([]TreeNode, len(t.Nodes)),
		Edges: make([]GraphEdge, len(t.Edges)),
	}
	copy(c.Nodes, t.Nodes)
	copy(c.Edges, t.Edges)
	return c
}

// NodeCost carries the A* bookkeeping for a single node.
type NodeCost struct {
	G int `json:"g"`
	H int `json:"h"`
	F int `json:"f"`
}

// NoLine marks a step without a pseudocode highlight.
const NoLine = -1

type Step struct {
	Elements    []Element        `json:"elements"`
	Graph       *GraphSnapshot   `json:"graphSnapshot,omitempty"`
	Tree        *TreeSnapshot    `json:"treeSnapshot,omitempty"`
	Costs       map[int]NodeCost `json:"costs,omitempty"`
	Path        []int            `json:"path,omitempty"`
	Description string           `json:"description"`
	LineIndex   int              `json:"lineIndex"`
}

func (s Step) Clone() Step {
	c := Step{
		Graph:       s.Graph.Clone(),
		Tree:        s.Tree.Clone(),
		Description: s.Description,
		LineIndex:   s.LineIndex,
	}
	if s.Elements != nil {
		c.Elements = make([]Element, len(s.Elements))
		copy(c.Elements, s.Elements)
	}
	if s.Costs != nil {
		c.Costs = make(map[int]NodeCost, len(s.Costs))
		for k, v := range s.Costs {
			c.Costs[k] = v
		}
	}
	if s.Path != nil {
		c.Path = make([]int, len(s.Path))
		copy(c.Path, s.Path)
	}
	return c
}

// Values returns the element values with statuses stripped.
func (s Step) Values() []int {
	out := make([]int, len(s.Elements))
	for i, e := range s.Elements {
		out[i] = e.Value
	}
	return out
}

// HasStatus reports whether any element, node or edge carries st.
func (s Step) HasStatus(st Status) bool {
	found := false
	s.eachStatus(func(v Status) {
		if v == st {
			found = true
		}
	})
	return found
}

// Terminal reports whether the step carries only terminal statuses.
func (s Step) Terminal() bool {
	ok := true
	s.eachStatus(func(v Status) {
		if v.Transient() {
			ok = false
		}
	})
	return ok
}

func (s Step) eachStatus(fn func(Status)) {
	for _, e := range s.Elements {
		fn(e.Status)
	}
	if s.Graph != nil {
		for _, n := range s.Graph.Nodes {
			fn(n.Status)
		}
		for _, e := range s.Graph.Edges {
			fn(e.Status)
		}
	}
	if s.Tree != nil {
		for _, n := range s.Tree.Nodes {
			fn(n.Status)
		}
		for _, e := range s.Tree.Edges {
			fn(e.Status)
		}
	}
}

func (s Step) String() string {
	return fmt.Sprintf("%v %s", s.Values(), s.Description)
}

// ElementsOf wraps plain values as default-status elements.
func ElementsOf(values []int) []Element {
	out := make([]Element, len(values))
	for i, v := range values {
		out[i] = Element{Value: v, Status: Default}
	}
	return out
}
