package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/dispatch"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/structure"
)

const tour = `name: tour
seed: 3
steps:
  - name: sort
    kind: array
    operation: merge_sort
    input: "5, 3, 8, 1"
    save_as: merge
  - name: search-sorted
    kind: array
    operation: binary_search
    continue: true
    params:
      value: 8
  - name: pop
    kind: stack
    operation: pop
    input: ""
    example: ""
    continue: false
  - name: shortest
    kind: graph
    operation: dijkstra
    params:
      start: 0
      target: "3"
    save_as: paths
`

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "tour.yaml", tour)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "tour", sc.Name)
	require.Len(t, sc.Steps, 4)
	assert.True(t, sc.Steps[1].Continue)
	assert.NotZero(t, sc.Random.GraphNodes, "defaults fill omitted random options")

	_, err = LoadScenario(writeScenario(t, t.TempDir(), "empty.yaml", "name: x\n"))
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	a := writeScenario(t, dir, "a.yaml", tour)
	b := writeScenario(t, dir, "nested/deeper/b.yaml", tour)
	writeScenario(t, dir, "nested/notes.txt", "x")

	files, err := Expand([]string{filepath.Join(dir, "**", "*.yaml"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	_, err = Expand([]string{filepath.Join(dir, "*.json")})
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "tour.yaml", tour)
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	out := store.NewDir(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, out.Init())
	r := &Runner{Dispatcher: dispatch.New(), Out: out, Compress: true}

	results, err := r.RunScenario(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Entry)
	assert.Equal(t, "merge.json.zst", results[0].Entry.File)

	assert.NoError(t, results[1].Err, "binary search continues on the sorted array")

	assert.NoError(t, results[2].Err, "a random stack is not empty")

	assert.NoError(t, results[3].Err)
	assert.Equal(t, structure.KindGraph, results[3].Kind)
	assert.Equal(t, 0, Failures(results))

	entries, err := out.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	again, err := r.RunScenario(context.Background(), sc)
	require.NoError(t, err)
	for i := range results {
		assert.Equal(t, results[i].Fingerprint, again[i].Fingerprint, "seeded scenarios are reproducible")
	}
}

func TestRunScenario_RecordsFailures(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []ScenarioStep{
		{Kind: "array", Operation: "binary_search", Input: "3, 1, 2", Params: map[string]any{"value": 1}},
		{Kind: "array", Operation: "bogo_sort", Input: "1"},
		{Kind: "queue", Operation: "enqueue", Input: "1", Params: map[string]any{"value": 2}},
	}}
	results, err := (&Runner{}).RunScenario(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var vf *dispatch.ValidationFailure
	assert.ErrorAs(t, results[0].Err, &vf)
	var gf *dispatch.GenerationFailure
	assert.ErrorAs(t, results[1].Err, &gf)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, Failures(results))
}

func TestRunScenario_Errors(t *testing.T) {
	tests := map[string]ScenarioStep{
		"unknown kind":       {Kind: "matrix", Operation: "search"},
		"continue first":     {Kind: "array", Operation: "bubble_sort", Continue: true},
		"bad input":          {Kind: "array", Operation: "bubble_sort", Input: "1, x"},
		"example wrong kind": {Kind: "array", Operation: "bubble_sort", Example: "graph"},
	}
	for name, step := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := (&Runner{}).RunScenario(context.Background(), &Scenario{Steps: []ScenarioStep{step}})
			assert.Error(t, err)
		})
	}
}

func TestRunScenario_Only(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Name: "sort/bubble", Kind: "array", Operation: "bubble_sort", Input: "2, 1"},
		{Name: "graph/bfs", Kind: "graph", Operation: "bfs"},
	}}
	results, err := (&Runner{Only: "sort/*"}).RunScenario(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sort/bubble", results[0].Name)

	_, err = (&Runner{Only: "[sort"}).RunScenario(context.Background(), sc)
	assert.Error(t, err)
}

func TestRunSweep(t *testing.T) {
	sweep := &SizeSweep{Kind: structure.KindArray, Operation: "binary_search", MinSize: 1, MaxSize: 40, Trials: 3, Seed: 9, Params: map[string]any{"value": 50}}
	results, err := RunSweep(context.Background(), sweep, dispatch.New())
	require.NoError(t, err)
	require.Len(t, results, structure.MaxArrayLen, "sizes are clamped")

	for _, r := range results {
		assert.LessOrEqual(t, r.MinSteps, r.MaxSteps)
		assert.GreaterOrEqual(t, r.Mean, float64(r.MinSteps))
		assert.LessOrEqual(t, r.Mean, float64(r.MaxSteps))
	}

	again, err := RunSweep(context.Background(), sweep, dispatch.New())
	require.NoError(t, err)
	assert.Equal(t, results, again, "same seed, same sweep")
	assert.Equal(t, 1, results[0].Size)

	_, err = RunSweep(context.Background(), &SizeSweep{Kind: structure.KindArray, Operation: "bubble_sort", MinSize: 5, MaxSize: 2}, dispatch.New())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunSweep(ctx, &SizeSweep{Kind: structure.KindArray, Operation: "bubble_sort", MinSize: 1, MaxSize: 3}, dispatch.New())
	assert.ErrorIs(t, err, context.Canceled)
}
