// Package structure holds the data structures a learner can operate on. Each
// variant implements [Structure]; callers switch on the concrete type, and
// only the dispatcher hands out mutated copies.
package structure

import (
	"fmt"
	"slices"
	"strings"
)

type Kind string

const (
	KindArray      Kind = "array"
	KindLinkedList Kind = "linked_list"
	KindStack      Kind = "stack"
	KindQueue      Kind = "queue"
	KindBinaryTree Kind = "binary_tree"
	KindHashTable  Kind = "hash_table"
	KindGraph      Kind = "graph"
)

var kinds = []Kind{KindArray, KindLinkedList, KindStack, KindQueue, KindBinaryTree, KindHashTable, KindGraph}

func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range kinds {
		if v == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Structure is the tagged union of every visualisable structure. The method
// set is closed to this package.
type Structure interface {
	Kind() Kind
	Len() int
	Clone() Structure
	sealed()
}

type Array struct {
	Values []int `json:"values"`
}

func (a *Array) Kind() Kind       { return KindArray }
func (a *Array) Len() int         { return len(a.Values) }
func (a *Array) Clone() Structure { return &Array{Values: cloneInts(a.Values)} }
func (a *Array) sealed()          {}

// Stack keeps its top at the end of Values.
type Stack struct {
	Values []int `json:"values"`
}

func (s *Stack) Kind() Kind       { return KindStack }
func (s *Stack) Len() int         { return len(s.Values) }
func (s *Stack) Clone() Structure { return &Stack{Values: cloneInts(s.Values)} }
func (s *Stack) sealed()          {}

// Queue keeps its front at index 0.
type Queue struct {
	Values []int `json:"values"`
}

func (q *Queue) Kind() Kind       { return KindQueue }
func (q *Queue) Len() int         { return len(q.Values) }
func (q *Queue) Clone() Structure { return &Queue{Values: cloneInts(q.Values)} }
func (q *Queue) sealed()          {}

type ListNode struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Next  int `json:"next"`
}

// LinkedList is a singly linked list stored as a node table. Next and Head
// are node ids; -1 terminates.
type LinkedList struct {
	Nodes []ListNode `json:"nodes"`
	Head  int        `json:"head"`
}

func NewLinkedList(values []int) *LinkedList {
	l := &LinkedList{Nodes: make([]ListNode, len(values)), Head: -1}
	for i, v := range values {
		next := i + 1
		if next == len(values) {
			next = -1
		}
		l.Nodes[i] = ListNode{ID: i, Value: v, Next: next}
	}
	if len(values) > 0 {
		l.Head = 0
	}
	return l
}

func (l *LinkedList) Kind() Kind { return KindLinkedList }
func (l *LinkedList) Len() int   { return len(l.Ordered()) }
func (l *LinkedList) sealed()    {}

func (l *LinkedList) Clone() Structure {
	c := &LinkedList{Nodes: make([]ListNode, len(l.Nodes)), Head: l.Head}
	copy(c.Nodes, l.Nodes)
	return c
}

// Ordered walks the list from Head and returns the reachable nodes. A cycle
// or a dangling id ends the walk.
func (l *LinkedList) Ordered() []ListNode {
	byID := make(map[int]ListNode, len(l.Nodes))
	for _, n := range l.Nodes {
		byID[n.ID] = n
	}
	out := make([]ListNode, 0, len(l.Nodes))
	seen := make(map[int]bool, len(l.Nodes))
	for id := l.Head; id != -1; {
		n, ok := byID[id]
		if !ok || seen[id] {
			break
		}
		seen[id] = true
		out = append(out, n)
		id = n.Next
	}
	return out
}

func (l *LinkedList) Values() []int {
	nodes := l.Ordered()
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value
	}
	return out
}

type TreeNode struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Left  int `json:"left"`
	Right int `json:"right"`
}

// BinaryTree is a node table rooted at Root; -1 marks a missing child or an
// empty tree.
type BinaryTree struct {
	Nodes []TreeNode `json:"nodes"`
	Root  int        `json:"root"`
}

func (t *BinaryTree) Kind() Kind { return KindBinaryTree }
func (t *BinaryTree) Len() int   { return len(t.Nodes) }
func (t *BinaryTree) sealed()    {}

func (t *BinaryTree) Clone() Structure {
	c := &BinaryTree{Nodes: make([]TreeNode, len(t.Nodes)), Root: t.Root}
	copy(c.Nodes, t.Nodes)
	return c
}

// Node returns the node with the given id.
func (t *BinaryTree) Node(id int) (TreeNode, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return TreeNode{}, false
}

// NextID returns an id not used by any node.
func (t *BinaryTree) NextID() int {
	max := -1
	for _, n := range t.Nodes {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// Check reports whether the node table forms a single tree: unique
// non-negative ids, Root set exactly when there are nodes, every child link
// either -1 or an existing id, and every node reachable from Root once.
func (t *BinaryTree) Check() error {
	idx := make(map[int]int, len(t.Nodes))
	for i, n := range t.Nodes {
		if n.ID < 0 {
			return fmt.Errorf("%w: negative node id %d", ErrBadTree, n.ID)
		}
		if _, dup := idx[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node id %d", ErrBadTree, n.ID)
		}
		idx[n.ID] = i
	}
	if len(t.Nodes) == 0 {
		if t.Root != -1 {
			return fmt.Errorf("%w: root %d in an empty tree", ErrBadTree, t.Root)
		}
		return nil
	}
	if _, ok := idx[t.Root]; !ok {
		return fmt.Errorf("%w: root %d does not exist", ErrBadTree, t.Root)
	}
	for _, n := range t.Nodes {
		for _, c := range [2]int{n.Left, n.Right} {
			if _, ok := idx[c]; c != -1 && !ok {
				return fmt.Errorf("%w: node %d points to missing child %d", ErrBadTree, n.ID, c)
			}
		}
	}

	seen := make(map[int]bool, len(t.Nodes))
	stack := []int{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == -1 {
			continue
		}
		if seen[id] {
			return fmt.Errorf("%w: node %d is reachable twice", ErrBadTree, id)
		}
		seen[id] = true
		n := t.Nodes[idx[id]]
		stack = append(stack, n.Right, n.Left)
	}
	if len(seen) != len(t.Nodes) {
		return fmt.Errorf("%w: %d nodes are not reachable from the root", ErrBadTree, len(t.Nodes)-len(seen))
	}
	return nil
}

// Insert adds v following binary-search-tree ordering; duplicates go right.
// A broken child link leaves t unchanged and returns ErrBadTree.
func (t *BinaryTree) Insert(v int) error {
	id := t.NextID()
	if t.Root == -1 {
		t.Nodes = append(t.Nodes, TreeNode{ID: id, Value: v, Left: -1, Right: -1})
		t.Root = id
		return nil
	}
	idx := make(map[int]int, len(t.Nodes))
	for i, n := range t.Nodes {
		idx[n.ID] = i
	}

	parent, left := -1, false
	for cur, depth := t.Root, 0; cur != -1; depth++ {
		i, ok := idx[cur]
		if !ok || depth > len(t.Nodes) {
			return fmt.Errorf("%w: no place to insert %d", ErrBadTree, v)
		}
		parent = i
		n := t.Nodes[i]
		if left = v < n.Value; left {
			cur = n.Left
		} else {
			cur = n.Right
		}
	}

	t.Nodes = append(t.Nodes, TreeNode{ID: id, Value: v, Left: -1, Right: -1})
	if left {
		t.Nodes[parent].Left = id
	} else {
		t.Nodes[parent].Right = id
	}
	return nil
}

// HashTable uses separate chaining; a value lives in bucket value mod len(Buckets).
type HashTable struct {
	Buckets [][]int `json:"buckets"`
}

func NewHashTable(buckets int) *HashTable {
	return &HashTable{Buckets: make([][]int, buckets)}
}

func (h *HashTable) Kind() Kind { return KindHashTable }
func (h *HashTable) sealed()    {}

func (h *HashTable) Len() int {
	n := 0
	for _, b := range h.Buckets {
		n += len(b)
	}
	return n
}

func (h *HashTable) Clone() Structure {
	c := &HashTable{Buckets: make([][]int, len(h.Buckets))}
	for i, b := range h.Buckets {
		c.Buckets[i] = cloneInts(b)
	}
	return c
}

// Bucket returns the bucket index for v. Negative values wrap into range.
func (h *HashTable) Bucket(v int) int {
	n := len(h.Buckets)
	if n == 0 {
		return 0
	}
	return ((v % n) + n) % n
}

type GraphNode struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type GraphEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

// Graph is undirected and weighted. Node ids are 0..len(Nodes)-1.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

func (g *Graph) Kind() Kind { return KindGraph }
func (g *Graph) Len() int   { return len(g.Nodes) }
func (g *Graph) sealed()    {}

func (g *Graph) Clone() Structure {
	c := &Graph{Nodes: make([]GraphNode, len(g.Nodes)), Edges: make([]GraphEdge, len(g.Edges))}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

func (g *Graph) HasNode(id int) bool { return id >= 0 && id < len(g.Nodes) }

func (g *Graph) HasEdge(a, b int) bool {
	for _, e := range g.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return true
		}
	}
	return false
}

// Neighbor is an adjacent node reached through an edge of the given weight.
type Neighbor struct {
	ID     int
	Weight int
}

// Adjacency returns neighbours per node sorted by id, so traversals visit
// them in a stable order.
func (g *Graph) Adjacency() [][]Neighbor {
	adj := make([][]Neighbor, len(g.Nodes))
	for _, e := range g.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			continue
		}
		adj[e.Source] = append(adj[e.Source], Neighbor{ID: e.Target, Weight: e.Weight})
		adj[e.Target] = append(adj[e.Target], Neighbor{ID: e.Source, Weight: e.Weight})
	}
	for _, ns := range adj {
		slices.SortStableFunc(ns, func(a, b Neighbor) int { return a.ID - b.ID })
	}
	return adj
}

func cloneInts(v []int) []int {
	if v == nil {
		return nil
	}
	c := make([]int, len(v))
	copy(c, v)
	return c
}
