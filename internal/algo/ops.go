package algo

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// ArrayAdd appends value, or inserts it at *index shifting the tail right.
func ArrayAdd(a *structure.Array, value int, index *int) Outcome {
	n := len(a.Values)
	at := n
	if index != nil {
		at = *index
	}
	el := trace.ElementsOf(a.Values)
	if at < 0 || at > n {
		return informational(el, fmt.Sprintf("Index %d is outside 0..%d; nothing inserted", at, n))
	}

	b := trace.NewBuilder(n - at + 3)
	b.Elements(el, trace.NoLine, "Initial array: %v", a.Values)
	el = append(el, trace.Element{Value: 0, Status: trace.Default})
	for i := n; i > at; i-- {
		el[i] = el[i-1]
		mark(el, trace.Swapping, i)
		b.Elements(el, 1, "Shift %d from index %d to %d", el[i].Value, i-1, i)
		el[i].Status = trace.Default
	}
	el[at] = trace.Element{Value: value, Status: trace.Added}
	b.Elements(el, 2, "Place %d at index %d", value, at)

	return Outcome{Steps: b.Steps(), Final: &structure.Array{Values: valuesOf(el)}, Applied: true}
}

// ArrayRemove deletes the element at index, shifting the tail left.
func ArrayRemove(a *structure.Array, index int) Outcome {
	n := len(a.Values)
	el := trace.ElementsOf(a.Values)
	if n == 0 {
		return informational(el, "Array is empty; nothing to remove")
	}
	if index < 0 || index >= n {
		return informational(el, fmt.Sprintf("Index %d is outside 0..%d; nothing removed", index, n-1))
	}

	b := trace.NewBuilder(n - index + 3)
	b.Elements(el, trace.NoLine, "Initial array: %v", a.Values)
	removed := el[index].Value
	el[index].Status = trace.Removing
	b.Elements(el, 0, "Remove %d at index %d", removed, index)
	for i := index; i < n-1; i++ {
		el[i] = el[i+1]
		mark(el, trace.Swapping, i)
		b.Elements(el, 1, "Shift %d from index %d to %d", el[i].Value, i+1, i)
		el[i].Status = trace.Default
	}
	el = el[:n-1]
	b.Elements(el, 2, "Removed %d; length is now %d", removed, len(el))

	return Outcome{Steps: b.Steps(), Final: &structure.Array{Values: valuesOf(el)}, Result: &removed, Applied: true}
}

func Push(s *structure.Stack, value int) Outcome {
	el := trace.ElementsOf(s.Values)
	b := trace.NewBuilder(2)
	b.Elements(el, trace.NoLine, "Stack (top last): %v", s.Values)
	el = append(el, trace.Element{Value: value, Status: trace.Added})
	b.Elements(el, 0, "Push %d onto the top", value)
	return Outcome{Steps: b.Steps(), Final: &structure.Stack{Values: valuesOf(el)}, Applied: true}
}

func Pop(s *structure.Stack) Outcome {
	el := trace.ElementsOf(s.Values)
	if len(el) == 0 {
		return informational(el, "Stack is empty; nothing to pop")
	}
	b := trace.NewBuilder(3)
	b.Elements(el, trace.NoLine, "Stack (top last): %v", s.Values)
	top := len(el) - 1
	v := el[top].Value
	el[top].Status = trace.Removing
	b.Elements(el, 0, "Pop the top value %d", v)
	el = el[:top]
	b.Elements(el, 1, "Popped %d", v)
	return Outcome{Steps: b.Steps(), Final: &structure.Stack{Values: valuesOf(el)}, Result: &v, Applied: true}
}

func PeekStack(s *structure.Stack) Outcome {
	el := trace.ElementsOf(s.Values)
	if len(el) == 0 {
		return informational(el, "Stack is empty; nothing to peek")
	}
	b := trace.NewBuilder(2)
	b.Elements(el, trace.NoLine, "Stack (top last): %v", s.Values)
	v := el[len(el)-1].Value
	el[len(el)-1].Status = trace.Found
	b.Elements(el, 0, "Top of the stack is %d", v)
	return Outcome{Steps: b.Steps(), Result: &v, Applied: true}
}

func Enqueue(q *structure.Queue, value int) Outcome {
	el := trace.ElementsOf(q.Values)
	b := trace.NewBuilder(2)
	b.Elements(el, trace.NoLine, "Queue (front first): %v", q.Values)
	el = append(el, trace.Element{Value: value, Status: trace.Added})
	b.Elements(el, 0, "Enqueue %d at the back", value)
	return Outcome{Steps: b.Steps(), Final: &structure.Queue{Values: valuesOf(el)}, Applied: true}
}

func Dequeue(q *structure.Queue) Outcome {
	el := trace.ElementsOf(q.Values)
	if len(el) == 0 {
		return informational(el, "Queue is empty; nothing to dequeue")
	}
	b := trace.NewBuilder(3)
	b.Elements(el, trace.NoLine, "Queue (front first): %v", q.Values)
	v := el[0].Value
	el[0].Status = trace.Removing
	b.Elements(el, 0, "Dequeue the front value %d", v)
	el = el[1:]
	b.Elements(el, 1, "Dequeued %d", v)
	return Outcome{Steps: b.Steps(), Final: &structure.Queue{Values: valuesOf(el)}, Result: &v, Applied: true}
}

func PeekQueue(q *structure.Queue) Outcome {
	el := trace.ElementsOf(q.Values)
	if len(el) == 0 {
		return informational(el, "Queue is empty; nothing to peek")
	}
	b := trace.NewBuilder(2)
	b.Elements(el, trace.NoLine, "Queue (front first): %v", q.Values)
	v := el[0].Value
	el[0].Status = trace.Found
	b.Elements(el, 0, "Front of the queue is %d", v)
	return Outcome{Steps: b.Steps(), Result: &v, Applied: true}
}

func listElements(nodes []structure.ListNode) []trace.Element {
	el := make([]trace.Element, len(nodes))
	for i, n := range nodes {
		el[i] = trace.Element{Value: n.Value, Status: trace.Default, Label: fmt.Sprintf("n%d", n.ID)}
	}
	return el
}

// rebuild lays nodes out as a fresh singly linked chain in the given order.
func rebuild(nodes []structure.ListNode) *structure.LinkedList {
	l := &structure.LinkedList{Nodes: make([]structure.ListNode, len(nodes)), Head: -1}
	for i, n := range nodes {
		next := -1
		if i+1 < len(nodes) {
			next = nodes[i+1].ID
		}
		l.Nodes[i] = structure.ListNode{ID: n.ID, Value: n.Value, Next: next}
	}
	if len(nodes) > 0 {
		l.Head = nodes[0].ID
	}
	return l
}

// ListInsert walks to position and links a new node there. A nil position
// appends at the tail.
func ListInsert(l *structure.LinkedList, value int, position *int) Outcome {
	nodes := l.Ordered()
	n := len(nodes)
	at := n
	if position != nil {
		at = *position
	}
	el := listElements(nodes)
	if at < 0 || at > n {
		return informational(el, fmt.Sprintf("Position %d is outside 0..%d; nothing inserted", at, n))
	}

	b := trace.NewBuilder(at + 3)
	b.Elements(el, trace.NoLine, "List: %s", joinInts(valuesOf(el)))
	for i := 0; i < at; i++ {
		el[i].Status = trace.Current
		b.Elements(el, 1, "Walk past %d (position %d)", el[i].Value, i)
		el[i].Status = trace.Visited
	}

	id := 0
	for _, nd := range l.Nodes {
		if nd.ID >= id {
			id = nd.ID + 1
		}
	}
	fresh := structure.ListNode{ID: id, Value: value}
	nodes = append(nodes[:at], append([]structure.ListNode{fresh}, nodes[at:]...)...)
	el = append(el[:at], append([]trace.Element{{Value: value, Status: trace.Added, Label: fmt.Sprintf("n%d", id)}}, el[at:]...)...)
	if at == 0 {
		b.Elements(el, 2, "Link %d in as the new head", value)
	} else {
		b.Elements(el, 3, "Link %d in after %d", value, el[at-1].Value)
	}
	return Outcome{Steps: b.Steps(), Final: rebuild(nodes), Applied: true}
}

// ListDelete unlinks the first node holding value.
func ListDelete(l *structure.LinkedList, value int) Outcome {
	nodes := l.Ordered()
	el := listElements(nodes)
	if len(nodes) == 0 {
		return informational(el, "List is empty; nothing to delete")
	}

	b := trace.NewBuilder(len(nodes) + 3)
	b.Elements(el, trace.NoLine, "List: %s", joinInts(valuesOf(el)))
	for i := range el {
		el[i].Status = trace.Comparing
		b.Elements(el, 1, "Compare %d with %d", el[i].Value, value)
		if el[i].Value != value {
			el[i].Status = trace.Visited
			continue
		}
		el[i].Status = trace.Removing
		b.Elements(el, 2, "Unlink %d", value)
		nodes = append(nodes[:i], nodes[i+1:]...)
		el = append(el[:i], el[i+1:]...)
		markAll(el, trace.Default)
		b.Elements(el, 3, "Deleted %d", value)
		return Outcome{Steps: b.Steps(), Final: rebuild(nodes), Result: &value, Applied: true}
	}
	b.Elements(el, 4, "%s; list unchanged", notFound(value))
	return Outcome{Steps: b.Steps(), Applied: true}
}

func ListSearch(l *structure.LinkedList, value int) Outcome {
	nodes := l.Ordered()
	el := listElements(nodes)
	if len(nodes) == 0 {
		return informational(el, "List is empty; "+notFound(value))
	}

	b := trace.NewBuilder(len(nodes) + 2)
	b.Elements(el, trace.NoLine, "List: %s", joinInts(valuesOf(el)))
	for i := range el {
		el[i].Status = trace.Comparing
		b.Elements(el, 1, "Compare %d with %d", el[i].Value, value)
		if el[i].Value == value {
			el[i].Status = trace.Found
			b.Elements(el, 2, "Found %d at position %d", value, i)
			pos := i
			return Outcome{Steps: b.Steps(), Result: &pos, Applied: true}
		}
		el[i].Status = trace.Visited
	}
	b.Elements(el, 3, "%s", notFound(value))
	return Outcome{Steps: b.Steps(), Applied: true}
}

// ListReverse flips one next pointer per step. Elements keep their original
// order until the last step, which shows the reversed chain.
func ListReverse(l *structure.LinkedList) Outcome {
	nodes := l.Ordered()
	el := listElements(nodes)
	if len(nodes) == 0 {
		return informational(el, "List is empty; nothing to reverse")
	}

	b := trace.NewBuilder(len(nodes) + 2)
	b.Elements(el, trace.NoLine, "List: %s", joinInts(valuesOf(el)))
	for i := range el {
		el[i].Status = trace.Current
		if i == 0 {
			b.Elements(el, 1, "Point %d at nil; it becomes the tail", el[i].Value)
		} else {
			b.Elements(el, 2, "Point %d back at %d", el[i].Value, el[i-1].Value)
		}
		el[i].Status = trace.Visited
	}

	rev := make([]structure.ListNode, len(nodes))
	out := make([]trace.Element, len(el))
	for i := range nodes {
		rev[len(nodes)-1-i] = nodes[i]
		out[len(el)-1-i] = el[i]
	}
	markAll(out, trace.Final)
	b.Elements(out, 3, "Head is now %d: %s", out[0].Value, joinInts(valuesOf(out)))
	return Outcome{Steps: b.Steps(), Final: rebuild(rev), Applied: true}
}

// hashElements flattens the buckets; each element is labelled with its bucket.
// It also returns the flat offset of every bucket.
func hashElements(h *structure.HashTable) ([]trace.Element, []int) {
	var el []trace.Element
	offsets := make([]int, len(h.Buckets))
	for bi, bucket := range h.Buckets {
		offsets[bi] = len(el)
		for _, v := range bucket {
			el = append(el, trace.Element{Value: v, Status: trace.Default, Label: fmt.Sprintf("[%d]", bi)})
		}
	}
	if el == nil {
		el = []trace.Element{}
	}
	return el, offsets
}

func HashInsert(h *structure.HashTable, value int) Outcome {
	el, offsets := hashElements(h)
	if len(h.Buckets) == 0 {
		return informational(el, "Hash table has no buckets")
	}
	bi := h.Bucket(value)
	b := trace.NewBuilder(3)
	b.Elements(el, trace.NoLine, "Hash table with %d buckets", len(h.Buckets))
	b.Elements(el, 0, "hash(%d) = %d mod %d = %d", value, value, len(h.Buckets), bi)

	at := offsets[bi] + len(h.Buckets[bi])
	el = append(el[:at], append([]trace.Element{{Value: value, Status: trace.Added, Label: fmt.Sprintf("[%d]", bi)}}, el[at:]...)...)
	b.Elements(el, 1, "Append %d to bucket %d", value, bi)

	out := h.Clone().(*structure.HashTable)
	out.Buckets[bi] = append(out.Buckets[bi], value)
	return Outcome{Steps: b.Steps(), Final: out, Applied: true}
}

func HashSearch(h *structure.HashTable, value int) Outcome {
	steps, _, pos := hashProbe(h, value, false)
	if pos < 0 {
		return Outcome{Steps: steps, Applied: len(h.Buckets) > 0}
	}
	return Outcome{Steps: steps, Result: &pos, Applied: true}
}

func HashDelete(h *structure.HashTable, value int) Outcome {
	steps, bi, pos := hashProbe(h, value, true)
	if pos < 0 {
		return Outcome{Steps: steps, Applied: len(h.Buckets) > 0}
	}
	out := h.Clone().(*structure.HashTable)
	out.Buckets[bi] = append(out.Buckets[bi][:pos], out.Buckets[bi][pos+1:]...)
	return Outcome{Steps: steps, Final: out, Result: &value, Applied: true}
}

// hashProbe scans value's bucket. It returns the bucket and the position of
// value inside it, or -1. With remove set the match is unlinked in the trace.
func hashProbe(h *structure.HashTable, value int, remove bool) (trace.Steps, int, int) {
	el, offsets := hashElements(h)
	if len(h.Buckets) == 0 {
		return informational(el, "Hash table has no buckets").Steps, -1, -1
	}
	bi := h.Bucket(value)
	b := trace.NewBuilder(len(h.Buckets[bi]) + 4)
	b.Elements(el, trace.NoLine, "Hash table with %d buckets", len(h.Buckets))
	b.Elements(el, 0, "hash(%d) = %d mod %d = %d", value, value, len(h.Buckets), bi)

	for j, v := range h.Buckets[bi] {
		i := offsets[bi] + j
		el[i].Status = trace.Comparing
		b.Elements(el, 1, "Compare %d with %d in bucket %d", v, value, bi)
		if v != value {
			el[i].Status = trace.Visited
			continue
		}
		if !remove {
			el[i].Status = trace.Found
			b.Elements(el, 2, "Found %d in bucket %d", value, bi)
			return b.Steps(), bi, j
		}
		el[i].Status = trace.Removing
		b.Elements(el, 2, "Remove %d from bucket %d", value, bi)
		el = append(el[:i], el[i+1:]...)
		markAll(el, trace.Default)
		b.Elements(el, 3, "Deleted %d", value)
		return b.Steps(), bi, j
	}
	b.Elements(el, 3, "%s in bucket %d", notFound(value), bi)
	return b.Steps(), bi, -1
}
