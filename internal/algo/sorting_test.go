package algo

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/san-kum/algoviz/internal/trace"
)

var sorters = []struct {
	name string
	fn   func([]int) trace.Steps
}{
	{"bubble", BubbleSort},
	{"selection", SelectionSort},
	{"insertion", InsertionSort},
	{"quick", QuickSort},
	{"merge", MergeSort},
	{"heap", HeapSort},
}

func TestSorters_Example(t *testing.T) {
	in := []int{5, 3, 8, 1}
	for _, s := range sorters {
		steps := s.fn(in)
		last, ok := steps.Last()
		if !ok {
			t.Fatalf("%s: empty trace", s.name)
		}
		if got := last.Values(); !slices.Equal(got, []int{1, 3, 5, 8}) {
			t.Errorf("%s: final values = %v", s.name, got)
		}
		if !slices.Equal(steps[0].Values(), in) {
			t.Errorf("%s: first step = %v, want input", s.name, steps[0].Values())
		}
		if !slices.Equal(in, []int{5, 3, 8, 1}) {
			t.Fatalf("%s mutated its input: %v", s.name, in)
		}
	}
}

func TestSorters_RandomInputs(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		n := rng.IntN(31)
		in := make([]int, n)
		for i := range in {
			in[i] = rng.IntN(10) - 3
		}
		want := slices.Clone(in)
		slices.Sort(want)

		for _, s := range sorters {
			steps := s.fn(in)
			if err := steps.Validate(); err != nil {
				t.Fatalf("seed %d %s: %v", seed, s.name, err)
			}
			if !slices.Equal(steps[0].Values(), in) {
				t.Errorf("seed %d %s: first step is not the input", seed, s.name)
			}
			last, _ := steps.Last()
			if !slices.Equal(last.Values(), want) {
				t.Errorf("seed %d %s: got %v, want %v", seed, s.name, last.Values(), want)
			}
			if n == 0 {
				if len(steps) != 1 {
					t.Errorf("%s: empty input gave %d steps", s.name, len(steps))
				}
				continue
			}
			for _, e := range last.Elements {
				if e.Status != trace.Sorted {
					t.Errorf("seed %d %s: final status %s", seed, s.name, e.Status)
					break
				}
			}
		}
	}
}

func TestSorters_Deterministic(t *testing.T) {
	in := []int{9, 4, 4, 7, 1, 0, 12, 3}
	for _, s := range sorters {
		a, err := s.fn(in).Fingerprint()
		if err != nil {
			t.Fatal(err)
		}
		b, _ := s.fn(in).Fingerprint()
		if a != b {
			t.Errorf("%s: traces differ between runs", s.name)
		}
	}
}

func TestSorters_CompareBeforeSwap(t *testing.T) {
	in := []int{4, 2, 7, 1, 3}
	for _, s := range sorters {
		if s.name == "heap" {
			// extraction swaps the root without a fresh comparison
			continue
		}
		steps := s.fn(in)
		compared := false
		for i, st := range steps {
			if st.HasStatus(trace.Comparing) {
				compared = true
			}
			if st.HasStatus(trace.Swapping) && !compared {
				t.Errorf("%s: step %d swaps before any comparison", s.name, i)
			}
		}
	}
}

func TestQuickSort_TagsPivot(t *testing.T) {
	steps := QuickSort([]int{3, 6, 1, 5, 2})
	pivots := 0
	for _, st := range steps {
		if st.HasStatus(trace.Pivot) {
			pivots++
		}
	}
	if pivots == 0 {
		t.Error("no step tags a pivot")
	}
}

func TestBubbleSort_SortedInputStopsEarly(t *testing.T) {
	steps := BubbleSort([]int{1, 2, 3, 4})
	// initial, three comparisons, one "in position" step, final
	if len(steps) != 6 {
		t.Errorf("expected 6 steps, got %d", len(steps))
	}
}
