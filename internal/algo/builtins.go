package algo

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/structure"
)

func registerBuiltins(r *Registry) {
	arr := structure.KindArray

	r.Register(Info{Name: "bubble_sort", Title: "Bubble Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n^2) time, O(1) space",
		Pseudocode: []string{
			"for i in 0..n-2",
			"  for j in 0..n-i-2",
			"    if a[j] > a[j+1]",
			"      swap(a[j], a[j+1])",
			"  a[n-i-1] is in place",
			"return a",
		}}, sorter(BubbleSort))

	r.Register(Info{Name: "selection_sort", Title: "Selection Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n^2) time, O(1) space",
		Pseudocode: []string{
			"for i in 0..n-2",
			"  min = i",
			"  for j in i+1..n-1",
			"    if a[j] < a[min]: min = j",
			"  swap(a[i], a[min])",
			"  a[i] is in place",
			"return a",
		}}, sorter(SelectionSort))

	r.Register(Info{Name: "insertion_sort", Title: "Insertion Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n^2) time, O(1) space",
		Pseudocode: []string{
			"for i in 1..n-1",
			"  j = i",
			"  while j > 0 and a[j-1] > a[j]",
			"    swap(a[j-1], a[j]); j--",
			"return a",
		}}, sorter(InsertionSort))

	r.Register(Info{Name: "quick_sort", Title: "Quick Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n log n) average, O(n^2) worst",
		Pseudocode: []string{
			"quickSort(lo, hi): if lo >= hi return",
			"  pivot = a[hi]",
			"  i = lo",
			"  for j in lo..hi-1: if a[j] < pivot",
			"    swap(a[i], a[j]); i++",
			"  swap(a[i], a[hi])",
			"  quickSort(lo, i-1); quickSort(i+1, hi)",
			"return a",
		}}, sorter(QuickSort))

	r.Register(Info{Name: "merge_sort", Title: "Merge Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n log n) comparisons",
		Pseudocode: []string{
			"mergeSort(lo, hi): if hi - lo < 2 return",
			"  mergeSort(lo, mid); mergeSort(mid, hi)",
			"  merge(lo, mid, hi)",
			"    compare left[i] with right[j]",
			"    take the smaller into place",
			"    repeat until a run is empty",
			"return a",
		}}, sorter(MergeSort))

	r.Register(Info{Name: "heap_sort", Title: "Heap Sort", Family: FamilySorting, Kind: arr, Mutates: true,
		Complexity: "O(n log n) time, O(1) space",
		Pseudocode: []string{
			"build a max heap",
			"siftDown: compare parent with children",
			"  swap parent with the larger child",
			"for end in n-1..1: swap(a[0], a[end])",
			"  a[end] is in place; siftDown(0, end)",
			"return a",
		}}, sorter(HeapSort))

	linear := Info{Name: "linear_search", Title: "Linear Search", Family: FamilySearching, Kind: arr,
		Params: []string{"value"}, Complexity: "O(n)",
		Pseudocode: []string{
			"for i in 0..n-1",
			"  if a[i] == target",
			"    return i",
			"return not found",
		}}
	r.Register(linear, searcher(LinearSearch))
	search := linear
	search.Name, search.Title = "search", "Search"
	r.Register(search, searcher(LinearSearch))

	r.Register(Info{Name: "binary_search", Title: "Binary Search", Family: FamilySearching, Kind: arr,
		Params: []string{"value"}, Complexity: "O(log n), sorted input",
		Pseudocode: []string{
			"lo, hi = 0, n-1",
			"while lo <= hi",
			"  mid = (lo + hi) / 2",
			"  if a[mid] == target: return mid",
			"  if a[mid] < target: lo = mid + 1",
			"  else: hi = mid - 1",
			"return not found",
		}}, searcher(BinarySearch))

	r.Register(Info{Name: "sliding_window", Title: "Sliding Window Maximum Sum", Family: FamilySearching, Kind: arr,
		Params: []string{"window"}, Complexity: "O(n)",
		Pseudocode: []string{
			"sum = a[0] + ... + a[k-1]",
			"best = sum",
			"for i in k..n-1: sum += a[i] - a[i-k]",
			"  if sum > best: best = sum",
			"return the best window",
		}}, func(s structure.Structure, p Params) (Outcome, error) {
		a, err := asArray(s)
		if err != nil {
			return Outcome{}, err
		}
		steps, start := MaxWindowSum(a.Values, p.Window)
		out := readOnly(steps)
		if start >= 0 {
			out.Result = &start
		}
		return out, nil
	})

	r.Register(Info{Name: "add", Title: "Insert Element", Family: FamilyOperation, Kind: arr, Mutates: true,
		Params: []string{"value", "index?"}, Complexity: "O(n)",
		Pseudocode: []string{
			"grow the array by one",
			"shift a[index..] one slot right",
			"a[index] = value",
		}}, op(func(a *structure.Array, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return ArrayAdd(a, v, p.Index), nil
	}))

	r.Register(Info{Name: "remove", Title: "Remove Element", Family: FamilyOperation, Kind: arr, Mutates: true,
		Params: []string{"index"}, Complexity: "O(n)",
		Pseudocode: []string{
			"mark a[index]",
			"shift a[index+1..] one slot left",
			"shrink the array by one",
		}}, op(func(a *structure.Array, p Params) (Outcome, error) {
		i, err := need(p.Index, "index")
		if err != nil {
			return Outcome{}, err
		}
		return ArrayRemove(a, i), nil
	}))

	registerLinear(r)
	registerList(r)
	registerTree(r)
	registerHash(r)
	registerGraph(r)
}

func registerLinear(r *Registry) {
	r.Register(Info{Name: "push", Title: "Push", Family: FamilyOperation, Kind: structure.KindStack, Mutates: true,
		Params: []string{"value"}, Complexity: "O(1)",
		Pseudocode: []string{"top = top + 1; s[top] = value"},
	}, op(func(s *structure.Stack, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return Push(s, v), nil
	}))
	r.Register(Info{Name: "pop", Title: "Pop", Family: FamilyOperation, Kind: structure.KindStack, Mutates: true,
		Complexity: "O(1)",
		Pseudocode: []string{"value = s[top]", "top = top - 1; return value"},
	}, op(func(s *structure.Stack, _ Params) (Outcome, error) { return Pop(s), nil }))
	r.Register(Info{Name: "peek", Title: "Peek", Family: FamilyOperation, Kind: structure.KindStack,
		Complexity: "O(1)",
		Pseudocode: []string{"return s[top]"},
	}, op(func(s *structure.Stack, _ Params) (Outcome, error) { return PeekStack(s), nil }))

	r.Register(Info{Name: "enqueue", Title: "Enqueue", Family: FamilyOperation, Kind: structure.KindQueue, Mutates: true,
		Params: []string{"value"}, Complexity: "O(1)",
		Pseudocode: []string{"q[rear] = value; rear = rear + 1"},
	}, op(func(q *structure.Queue, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return Enqueue(q, v), nil
	}))
	r.Register(Info{Name: "dequeue", Title: "Dequeue", Family: FamilyOperation, Kind: structure.KindQueue, Mutates: true,
		Complexity: "O(1)",
		Pseudocode: []string{"value = q[front]", "front = front + 1; return value"},
	}, op(func(q *structure.Queue, _ Params) (Outcome, error) { return Dequeue(q), nil }))
	r.Register(Info{Name: "peek", Title: "Peek", Family: FamilyOperation, Kind: structure.KindQueue,
		Complexity: "O(1)",
		Pseudocode: []string{"return q[front]"},
	}, op(func(q *structure.Queue, _ Params) (Outcome, error) { return PeekQueue(q), nil }))
}

func registerList(r *Registry) {
	k := structure.KindLinkedList
	r.Register(Info{Name: "insert", Title: "Insert Node", Family: FamilyOperation, Kind: k, Mutates: true,
		Params: []string{"value", "index?"}, Complexity: "O(n)",
		Pseudocode: []string{
			"node = new(value); cur = head",
			"walk to position - 1",
			"if position == 0: node.next = head; head = node",
			"else: node.next = cur.next; cur.next = node",
		}}, op(func(l *structure.LinkedList, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return ListInsert(l, v, p.Index), nil
	}))
	r.Register(Info{Name: "delete", Title: "Delete Node", Family: FamilyOperation, Kind: k, Mutates: true,
		Params: []string{"value"}, Complexity: "O(n)",
		Pseudocode: []string{
			"prev = nil; cur = head",
			"while cur != nil and cur.value != value: advance",
			"prev.next = cur.next",
			"return deleted",
			"return not found",
		}}, op(func(l *structure.LinkedList, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return ListDelete(l, v), nil
	}))
	r.Register(Info{Name: "search", Title: "Search List", Family: FamilySearching, Kind: k,
		Params: []string{"value"}, Complexity: "O(n)",
		Pseudocode: []string{
			"cur = head",
			"while cur != nil: if cur.value == value",
			"  return position",
			"return not found",
		}}, op(func(l *structure.LinkedList, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		return ListSearch(l, v), nil
	}))
	r.Register(Info{Name: "reverse", Title: "Reverse List", Family: FamilyOperation, Kind: k, Mutates: true,
		Complexity: "O(n)",
		Pseudocode: []string{
			"prev = nil; cur = head",
			"next = cur.next; cur.next = prev",
			"prev = cur; cur = next",
			"head = prev",
		}}, op(func(l *structure.LinkedList, _ Params) (Outcome, error) { return ListReverse(l), nil }))
}

func registerTree(r *Registry) {
	k := structure.KindBinaryTree
	for _, t := range []struct {
		r     Traversal
		title string
		line  string
	}{
		{Inorder, "Inorder Traversal", "  inorder(left); visit(node); inorder(right)"},
		{Preorder, "Preorder Traversal", "  visit(node); preorder(left); preorder(right)"},
		{Postorder, "Postorder Traversal", "  postorder(left); postorder(right); visit(node)"},
		{LevelOrder, "Level Order Traversal", "  u = dequeue(); visit(u); enqueue(u.left, u.right)"},
	} {
		first := fmt.Sprintf("%s(node): if node == nil return", t.r)
		if t.r == LevelOrder {
			first = "enqueue(root); while queue not empty"
		}
		r.Register(Info{Name: string(t.r), Title: t.title, Family: FamilyTree, Kind: k,
			Complexity: "O(n)",
			Pseudocode: []string{first, t.line, "return the visit order"},
		}, traversal(t.r))
	}

	r.Register(Info{Name: "search", Title: "BST Search", Family: FamilySearching, Kind: k,
		Params: []string{"value"}, Complexity: "O(h)",
		Pseudocode: []string{
			"node = root",
			"while node != nil",
			"  if target == node.value: return node",
			"  if target < node.value: node = node.left",
			"  else: node = node.right",
			"return not found",
		}}, op(func(t *structure.BinaryTree, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		steps, id := TreeSearch(t, v)
		out := readOnly(steps)
		if id >= 0 {
			out.Result = &id
		}
		return out, nil
	}))
	r.Register(Info{Name: "insert", Title: "BST Insert", Family: FamilyOperation, Kind: k, Mutates: true,
		Params: []string{"value"}, Complexity: "O(h)",
		Pseudocode: []string{
			"node = root",
			"if root == nil: root = new(value)",
			"if value < node.value: go left",
			"else: go right",
			"attach new(value) at the empty child",
		}}, op(func(t *structure.BinaryTree, p Params) (Outcome, error) {
		v, err := need(p.Value, "value")
		if err != nil {
			return Outcome{}, err
		}
		steps, out, err := TreeInsert(t, v)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Steps: steps, Final: out, Applied: true}, nil
	}))
}

func registerHash(r *Registry) {
	k := structure.KindHashTable
	value := func(fn func(*structure.HashTable, int) Outcome) Generator {
		return op(func(h *structure.HashTable, p Params) (Outcome, error) {
			v, err := need(p.Value, "value")
			if err != nil {
				return Outcome{}, err
			}
			return fn(h, v), nil
		})
	}
	r.Register(Info{Name: "insert", Title: "Hash Insert", Family: FamilyOperation, Kind: k, Mutates: true,
		Params: []string{"value"}, Complexity: "O(1) average",
		Pseudocode: []string{"b = value mod m", "buckets[b].append(value)"},
	}, value(HashInsert))
	r.Register(Info{Name: "search", Title: "Hash Search", Family: FamilySearching, Kind: k,
		Params: []string{"value"}, Complexity: "O(1) average",
		Pseudocode: []string{"b = value mod m", "for v in buckets[b]: compare", "  return found", "return not found"},
	}, value(HashSearch))
	r.Register(Info{Name: "delete", Title: "Hash Delete", Family: FamilyOperation, Kind: k, Mutates: true,
		Params: []string{"value"}, Complexity: "O(1) average",
		Pseudocode: []string{"b = value mod m", "for v in buckets[b]: compare", "  unlink v", "return"},
	}, value(HashDelete))
}

func registerGraph(r *Registry) {
	k := structure.KindGraph
	walkCode := func(put, take string) []string {
		return []string{
			put + "(start)",
			"while not empty",
			"  u = " + take + "()",
			"  for each unvisited neighbour v: " + put + "(v)",
			"  if u == target: return path(u)",
			"return the visit order",
		}
	}
	r.Register(Info{Name: "bfs", Title: "Breadth-First Search", Family: FamilyGraph, Kind: k,
		Params: []string{"start?", "target?"}, Complexity: "O(V + E)",
		Pseudocode: walkCode("enqueue", "dequeue"),
	}, graphWalk(BFS))
	r.Register(Info{Name: "dfs", Title: "Depth-First Search", Family: FamilyGraph, Kind: k,
		Params: []string{"start?", "target?"}, Complexity: "O(V + E)",
		Pseudocode: walkCode("push", "pop"),
	}, graphWalk(DFS))

	bestCode := func(key string) []string {
		return []string{
			"dist[start] = 0; push(start)",
			"while heap not empty",
			"  u = pop the lowest " + key,
			"  for (v, w) in neighbours(u): if dist[u] + w < dist[v]",
			"    dist[v] = dist[u] + w; push(v)",
			"  if u == target: return path(u)",
			"return dist",
		}
	}
	r.Register(Info{Name: "dijkstra", Title: "Dijkstra's Shortest Path", Family: FamilyGraph, Kind: k,
		Params: []string{"start?", "target?"}, Complexity: "O((V + E) log V)",
		Pseudocode: bestCode("dist"),
	}, graphWalk(Dijkstra))
	r.Register(Info{Name: "astar", Title: "A* Search", Family: FamilyGraph, Kind: k,
		Params: []string{"start?", "target"}, Complexity: "O((V + E) log V)",
		Pseudocode: bestCode("f = g + h"),
	}, graphWalk(AStar))
}
