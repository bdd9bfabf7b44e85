// Package algo produces step traces for classic algorithms.
//
// Every generator is a pure function of its input: it never mutates the
// structure it reads, and it records one step per comparison, exchange or
// visit so that stepping backwards and forwards lines up with the algorithm's
// logical operations.
//
//   - Sorting: bubble, selection, insertion, quick, merge, heap
//   - Searching: linear, binary, sliding window
//   - Graph: BFS, DFS, Dijkstra, A*
//   - Tree: inorder, preorder, postorder, level order, BST search/insert
//   - Structure operations on arrays, stacks, queues, lists and hash tables
//
// The first step of every trace is the untouched input; the last carries
// only terminal statuses. Generators are looked up through a [Registry].
package algo
