package algo

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// Traversal names a tree visiting rule.
type Traversal string

const (
	Inorder    Traversal = "inorder"
	Preorder   Traversal = "preorder"
	Postorder  Traversal = "postorder"
	LevelOrder Traversal = "levelorder"
)

func (r Traversal) rule() string {
	switch r {
	case Inorder:
		return "Inorder (left, root, right)"
	case Preorder:
		return "Preorder (root, left, right)"
	case Postorder:
		return "Postorder (left, right, root)"
	}
	return "Level order (top to bottom, left to right)"
}

type treeView struct {
	t    *structure.BinaryTree
	idx  map[int]int
	snap *trace.TreeSnapshot
}

func newTreeView(t *structure.BinaryTree) *treeView {
	v := &treeView{
		t:   t,
		idx: make(map[int]int, len(t.Nodes)),
		snap: &trace.TreeSnapshot{
			Root:  t.Root,
			Nodes: make([]trace.TreeNode, len(t.Nodes)),
		},
	}
	for i, n := range t.Nodes {
		v.idx[n.ID] = i
	}

	xs := make(map[int]int, len(t.Nodes))
	for i, id := range walk(t, v.idx, Inorder, t.Root, 0, nil) {
		xs[id] = i
	}
	depth := depths(t, v.idx)

	for i, n := range t.Nodes {
		v.snap.Nodes[i] = trace.TreeNode{
			ID:     n.ID,
			Value:  n.Value,
			Left:   n.Left,
			Right:  n.Right,
			X:      float64(xs[n.ID]),
			Y:      float64(depth[n.ID]),
			Status: trace.Default,
		}
		for _, c := range []int{n.Left, n.Right} {
			if _, ok := v.idx[c]; ok {
				v.snap.Edges = append(v.snap.Edges, trace.GraphEdge{Source: n.ID, Target: c, Status: trace.Default})
			}
		}
	}
	return v
}

// walk returns the ids reachable from id in the given order, appended to acc.
// The accumulator is threaded through the recursion by value; a depth beyond
// the node count stops a malformed (cyclic) table.
func walk(t *structure.BinaryTree, idx map[int]int, r Traversal, id, depth int, acc []int) []int {
	i, ok := idx[id]
	if !ok || depth > len(t.Nodes) {
		return acc
	}
	n := t.Nodes[i]
	switch r {
	case Preorder:
		acc = append(acc, id)
		acc = walk(t, idx, r, n.Left, depth+1, acc)
		return walk(t, idx, r, n.Right, depth+1, acc)
	case Postorder:
		acc = walk(t, idx, r, n.Left, depth+1, acc)
		acc = walk(t, idx, r, n.Right, depth+1, acc)
		return append(acc, id)
	default:
		acc = walk(t, idx, r, n.Left, depth+1, acc)
		acc = append(acc, id)
		return walk(t, idx, r, n.Right, depth+1, acc)
	}
}

func levels(t *structure.BinaryTree, idx map[int]int) []int {
	var out []int
	seen := make(map[int]bool, len(t.Nodes))
	queue := []int{t.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		i, ok := idx[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		queue = append(queue, t.Nodes[i].Left, t.Nodes[i].Right)
	}
	return out
}

func depths(t *structure.BinaryTree, idx map[int]int) map[int]int {
	d := make(map[int]int, len(t.Nodes))
	type item struct{ id, depth int }
	queue := []item{{t.Root, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		i, ok := idx[it.id]
		if _, done := d[it.id]; !ok || done {
			continue
		}
		d[it.id] = it.depth
		queue = append(queue, item{t.Nodes[i].Left, it.depth + 1}, item{t.Nodes[i].Right, it.depth + 1})
	}
	return d
}

func (v *treeView) node(id int, st trace.Status) {
	if i, ok := v.idx[id]; ok {
		v.snap.Nodes[i].Status = st
	}
}

func (v *treeView) value(id int) int { return v.t.Nodes[v.idx[id]].Value }

func (v *treeView) push(b *trace.Builder, el []trace.Element, line int, format string, args ...any) {
	b.Push(trace.Step{
		Elements:    el,
		Tree:        v.snap,
		Description: fmt.Sprintf(format, args...),
		LineIndex:   line,
	})
}

// Traverse visits every node of t under rule r, one step per visit.
func Traverse(t *structure.BinaryTree, r Traversal) trace.Steps {
	v := newTreeView(t)
	b := trace.NewBuilder(len(t.Nodes) + 2)
	if len(v.idx) == 0 || t.Root < 0 {
		v.push(b, nil, trace.NoLine, "Tree is empty; nothing to traverse")
		return b.Steps()
	}
	if _, ok := v.idx[t.Root]; !ok {
		v.push(b, nil, trace.NoLine, "Root %d is not in the tree; nothing to traverse", t.Root)
		return b.Steps()
	}
	v.push(b, []trace.Element{}, trace.NoLine, "%s traversal from root %d", r.rule(), v.value(t.Root))

	var order []int
	if r == LevelOrder {
		order = levels(t, v.idx)
	} else {
		order = walk(t, v.idx, r, t.Root, 0, nil)
	}
	if len(order) == 0 {
		v.push(b, []trace.Element{}, 2, "%s complete: nothing reachable from the root", r.rule())
		return b.Steps()
	}

	el := make([]trace.Element, 0, len(order))
	for i, id := range order {
		if i > 0 {
			v.node(order[i-1], trace.Visited)
		}
		v.node(id, trace.Current)
		el = append(el, trace.Element{Value: v.value(id), Status: trace.Visited})
		v.push(b, el, 1, "%s: visit %d", r.rule(), v.value(id))
	}
	v.node(order[len(order)-1], trace.Visited)
	v.push(b, el, 2, "%s complete: %s", r.rule(), joinInts(valuesOf(el)))
	return b.Steps()
}

// TreeSearch walks the binary-search-tree path towards target. It returns the
// id of the matching node, or -1.
func TreeSearch(t *structure.BinaryTree, target int) (trace.Steps, int) {
	v := newTreeView(t)
	b := trace.NewBuilder(len(t.Nodes) + 2)
	if len(v.idx) == 0 || t.Root < 0 {
		v.push(b, nil, trace.NoLine, "Tree is empty; %s", notFound(target))
		return b.Steps(), -1
	}
	v.push(b, []trace.Element{}, trace.NoLine, "Search for %d from the root", target)

	var el []trace.Element
	cur, steps := t.Root, 0
	for cur != -1 && steps <= len(t.Nodes) {
		i, ok := v.idx[cur]
		if !ok {
			break
		}
		steps++
		n := t.Nodes[i]
		el = append(el, trace.Element{Value: n.Value, Status: trace.Visited})
		if n.Value == target {
			v.node(cur, trace.Found)
			el[len(el)-1].Status = trace.Found
			v.push(b, el, 2, "%d == %d. Found", n.Value, target)
			return b.Steps(), cur
		}
		v.node(cur, trace.Comparing)
		if target < n.Value {
			v.push(b, el, 3, "%d < %d, go left", target, n.Value)
			cur = n.Left
		} else {
			v.push(b, el, 4, "%d > %d, go right", target, n.Value)
			cur = n.Right
		}
		v.node(n.ID, trace.Visited)
	}
	v.push(b, el, 5, "Reached an empty subtree. %s", notFound(target))
	return b.Steps(), -1
}

// TreeInsert records the descent for inserting value and returns the tree
// that results. t is not modified.
func TreeInsert(t *structure.BinaryTree, value int) (trace.Steps, *structure.BinaryTree, error) {
	out := t.Clone().(*structure.BinaryTree)
	if err := out.Insert(value); err != nil {
		return nil, nil, err
	}
	newID := out.Nodes[len(out.Nodes)-1].ID

	v := newTreeView(t)
	b := trace.NewBuilder(len(t.Nodes) + 3)
	v.push(b, []trace.Element{}, trace.NoLine, "Insert %d", value)

	var path []int
	cur := t.Root
	for cur != -1 && len(path) <= len(t.Nodes) {
		i, ok := v.idx[cur]
		if !ok {
			break
		}
		n := t.Nodes[i]
		path = append(path, n.ID)
		v.node(cur, trace.Comparing)
		if value < n.Value {
			v.push(b, nil, 2, "%d < %d, go left", value, n.Value)
			cur = n.Left
		} else {
			v.push(b, nil, 3, "%d >= %d, go right", value, n.Value)
			cur = n.Right
		}
		v.node(n.ID, trace.Visited)
	}

	after := newTreeView(out)
	for _, id := range path {
		after.node(id, trace.Visited)
	}
	after.node(newID, trace.Added)
	el := []trace.Element{{Value: value, Status: trace.Added}}
	if len(path) == 0 {
		after.push(b, el, 1, "Tree is empty; %d becomes the root", value)
	} else {
		after.push(b, el, 4, "Attach %d below %d", value, v.value(path[len(path)-1]))
	}
	return b.Steps(), out, nil
}
