package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/structure"
)

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, s structure.Structure) structure.Envelope {
	t.Helper()
	env, err := structure.Wrap(s)
	require.NoError(t, err)
	return env
}

func TestHealthz(t *testing.T) {
	w := do(t, New().Handler(), "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListAlgorithms(t *testing.T) {
	h := New().Handler()

	w := do(t, h, "GET", "/api/algorithms?kind=graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var infos []algo.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.NotEmpty(t, infos)
	for _, info := range infos {
		assert.Equal(t, structure.KindGraph, info.Kind)
	}

	w = do(t, h, "GET", "/api/algorithms?kind=matrix", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/api/algorithms/array/heap_sort", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pseudocode"`)

	w = do(t, h, "GET", "/api/algorithms/array/bogo_sort", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRandomExample(t *testing.T) {
	h := New().Handler()

	w := do(t, h, "POST", "/api/examples/graph?seed=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first exampleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, uint64(42), first.Seed)
	assert.Equal(t, structure.KindGraph, first.Structure.Kind)

	w = do(t, h, "POST", "/api/examples/graph?seed=42", nil)
	var second exampleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.JSONEq(t, string(first.Structure.Data), string(second.Structure.Data), "same seed, same example")

	w = do(t, h, "POST", "/api/examples/array?operation=binary_search", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sorted exampleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sorted))
	assert.Equal(t, "sorted_array", sorted.Example)

	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/api/examples/matrix", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/api/examples/array?seed=-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/api/examples/array?example=graph", nil).Code)
}

func TestDispatch(t *testing.T) {
	s := New()
	h := s.Handler()

	w := do(t, h, "POST", "/api/dispatch", map[string]any{
		"kind":      "array",
		"operation": "bubble_sort",
		"structure": envelope(t, &structure.Array{Values: []int{5, 3, 8, 1}}),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	last, ok := resp.Steps.Last()
	require.True(t, ok)
	assert.Equal(t, []int{1, 3, 5, 8}, last.Values())
	require.NotNil(t, resp.Final)

	final, err := resp.Final.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 8}, final.(*structure.Array).Values)
}

func TestDispatch_ValidationIs422(t *testing.T) {
	h := New().Handler()
	w := do(t, h, "POST", "/api/dispatch", map[string]any{
		"operation": "pop",
		"structure": envelope(t, &structure.Stack{}),
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pop", resp.Op)
	assert.NotEmpty(t, resp.Error)
	assert.NotNil(t, resp.Steps)
	assert.Empty(t, resp.Steps)
}

func TestDispatch_Tree(t *testing.T) {
	h := New().Handler()
	tree, err := structure.FromValues(structure.KindBinaryTree, []int{5, 3, 8})
	require.NoError(t, err)

	w := do(t, h, "POST", "/api/dispatch", map[string]any{
		"operation": "insert",
		"structure": envelope(t, tree),
		"params":    map[string]any{"value": 4},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Applied)
	require.NotNil(t, resp.Final)
	final, err := resp.Final.Unwrap()
	require.NoError(t, err)
	assert.Len(t, final.(*structure.BinaryTree).Nodes, 4)

	cyclic := &structure.BinaryTree{Root: 0, Nodes: []structure.TreeNode{{ID: 0, Value: 1, Left: 0, Right: -1}}}
	w = do(t, h, "POST", "/api/dispatch", map[string]any{
		"operation": "insert",
		"structure": envelope(t, cyclic),
		"params":    map[string]any{"value": 4},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var bad errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bad))
	assert.Equal(t, "structure", bad.Field)
}

func TestDispatch_Errors(t *testing.T) {
	h := New().Handler()

	w := do(t, h, "POST", "/api/dispatch", map[string]any{
		"kind": "array", "operation": "bogo_sort",
		"structure": envelope(t, &structure.Array{Values: []int{1}}),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest("POST", "/api/dispatch", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	w = do(t, h, "POST", "/api/dispatch", map[string]any{"operation": "bubble_sort", "structure": map[string]any{"kind": "matrix"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport(t *testing.T) {
	h := New().Handler()
	w := do(t, h, "POST", "/api/export", map[string]any{
		"kind":        "graph",
		"operation":   "bfs",
		"structure":   envelope(t, &structure.Graph{Nodes: []structure.GraphNode{{ID: 0, Label: "A"}, {ID: 1, Label: "B", X: 1}}, Edges: []structure.GraphEdge{{Source: 0, Target: 1, Weight: 1}}}),
		"params":      map[string]any{"start": 0},
		"currentStep": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bfs-trace.json")

	e, err := store.Read(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "bfs", e.Algorithm)
	assert.Equal(t, 1, e.CurrentStep)

	w = do(t, h, "POST", "/api/export", map[string]any{
		"kind": "array", "operation": "bubble_sort",
		"structure":   envelope(t, &structure.Array{Values: []int{2, 1}}),
		"currentStep": 99,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetrics(t *testing.T) {
	s := New()
	h := s.Handler()

	do(t, h, "POST", "/api/dispatch", map[string]any{
		"kind": "queue", "operation": "dequeue",
		"structure": envelope(t, &structure.Queue{}),
	})
	do(t, h, "POST", "/api/dispatch", map[string]any{
		"kind": "queue", "operation": "enqueue",
		"structure": envelope(t, &structure.Queue{Values: []int{1}}),
		"params":    map[string]any{"value": "2"},
	})
	do(t, h, "POST", "/api/examples/stack", nil)

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `algoviz_dispatches_total{kind="queue",operation="dequeue",outcome="invalid"} 1`)
	assert.Contains(t, body, `algoviz_dispatches_total{kind="queue",operation="enqueue",outcome="ok"} 1`)
	assert.Contains(t, body, `algoviz_examples_total{kind="stack"} 1`)
	assert.Contains(t, body, "algoviz_trace_steps_bucket")
}
