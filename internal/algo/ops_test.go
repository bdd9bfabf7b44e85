package algo

import (
	"slices"
	"testing"

	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

func TestArrayAdd(t *testing.T) {
	a := &structure.Array{Values: []int{1, 2, 3}}
	tests := []struct {
		name  string
		index *int
		want  []int
		steps int
	}{
		{"append", nil, []int{1, 2, 3, 9}, 2},
		{"front", Int(0), []int{9, 1, 2, 3}, 5},
		{"middle", Int(1), []int{1, 9, 2, 3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ArrayAdd(a, 9, tt.index)
			if !out.Applied {
				t.Fatal("not applied")
			}
			if got := out.Final.(*structure.Array).Values; !slices.Equal(got, tt.want) {
				t.Errorf("final = %v, want %v", got, tt.want)
			}
			if len(out.Steps) != tt.steps {
				t.Errorf("%d steps, want %d", len(out.Steps), tt.steps)
			}
			if err := out.Steps.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
	if !slices.Equal(a.Values, []int{1, 2, 3}) {
		t.Errorf("input mutated: %v", a.Values)
	}

	if out := ArrayAdd(a, 9, Int(7)); out.Applied || len(out.Steps) != 1 {
		t.Error("out of range index should be informational")
	}
}

func TestArrayRemove(t *testing.T) {
	out := ArrayRemove(&structure.Array{Values: []int{4, 5, 6}}, 0)
	if got := out.Final.(*structure.Array).Values; !slices.Equal(got, []int{5, 6}) {
		t.Errorf("final = %v", got)
	}
	if out.Result == nil || *out.Result != 4 {
		t.Errorf("result = %v", out.Result)
	}
	if out := ArrayRemove(&structure.Array{}, 0); out.Applied || len(out.Steps) != 1 {
		t.Error("removing from an empty array should be informational")
	}
}

func TestStackAndQueue(t *testing.T) {
	s := &structure.Stack{Values: []int{1, 2}}
	if out := Push(s, 3); !slices.Equal(out.Final.(*structure.Stack).Values, []int{1, 2, 3}) {
		t.Errorf("push: %v", out.Final)
	}
	out := Pop(s)
	if *out.Result != 2 || !slices.Equal(out.Final.(*structure.Stack).Values, []int{1}) {
		t.Errorf("pop: %v %v", *out.Result, out.Final)
	}
	if out := PeekStack(s); *out.Result != 2 || out.Final != nil {
		t.Error("peek should read the top without a final state")
	}

	q := &structure.Queue{Values: []int{1, 2}}
	if out := Enqueue(q, 3); !slices.Equal(out.Final.(*structure.Queue).Values, []int{1, 2, 3}) {
		t.Errorf("enqueue: %v", out.Final)
	}
	out = Dequeue(q)
	if *out.Result != 1 || !slices.Equal(out.Final.(*structure.Queue).Values, []int{2}) {
		t.Errorf("dequeue: %v %v", *out.Result, out.Final)
	}
	if *PeekQueue(q).Result != 1 {
		t.Error("peek should read the front")
	}
}

func TestEmptyTargets(t *testing.T) {
	tests := map[string]Outcome{
		"pop":     Pop(&structure.Stack{}),
		"peek":    PeekStack(&structure.Stack{}),
		"dequeue": Dequeue(&structure.Queue{}),
		"front":   PeekQueue(&structure.Queue{}),
		"delete":  ListDelete(structure.NewLinkedList(nil), 1),
		"reverse": ListReverse(structure.NewLinkedList(nil)),
	}
	for name, out := range tests {
		if out.Applied || out.Final != nil {
			t.Errorf("%s: expected no mutation", name)
		}
		if len(out.Steps) != 1 {
			t.Errorf("%s: %d steps, want 1", name, len(out.Steps))
		}
	}
}

func TestLinkedListOps(t *testing.T) {
	l := structure.NewLinkedList([]int{10, 20, 30})

	out := ListInsert(l, 15, Int(1))
	if got := out.Final.(*structure.LinkedList).Values(); !slices.Equal(got, []int{10, 15, 20, 30}) {
		t.Errorf("insert: %v", got)
	}
	out = ListInsert(l, 5, Int(0))
	if got := out.Final.(*structure.LinkedList).Values(); !slices.Equal(got, []int{5, 10, 20, 30}) {
		t.Errorf("insert at head: %v", got)
	}

	out = ListDelete(l, 20)
	if got := out.Final.(*structure.LinkedList).Values(); !slices.Equal(got, []int{10, 30}) {
		t.Errorf("delete: %v", got)
	}
	if out := ListDelete(l, 99); out.Final != nil || !out.Applied {
		t.Error("deleting a missing value should leave the list alone")
	}

	out = ListSearch(l, 30)
	if out.Result == nil || *out.Result != 2 {
		t.Errorf("search: %v", out.Result)
	}

	out = ListReverse(l)
	if got := out.Final.(*structure.LinkedList).Values(); !slices.Equal(got, []int{30, 20, 10}) {
		t.Errorf("reverse: %v", got)
	}
	last, _ := out.Steps.Last()
	if !slices.Equal(last.Values(), []int{30, 20, 10}) {
		t.Errorf("reverse final frame: %v", last.Values())
	}
	if !slices.Equal(l.Values(), []int{10, 20, 30}) {
		t.Errorf("input mutated: %v", l.Values())
	}
}

func TestHashOps(t *testing.T) {
	h := structure.NewHashTable(5)
	h.Buckets[2] = []int{7, 12}

	out := HashInsert(h, 17)
	got := out.Final.(*structure.HashTable)
	if !slices.Equal(got.Buckets[2], []int{7, 12, 17}) {
		t.Errorf("insert: %v", got.Buckets)
	}
	last, _ := out.Steps.Last()
	for _, e := range last.Elements {
		if e.Label != "[2]" {
			t.Errorf("element %d labelled %q", e.Value, e.Label)
		}
	}

	out = HashSearch(h, 12)
	if out.Result == nil || *out.Result != 1 {
		t.Errorf("search: %v", out.Result)
	}
	if out := HashSearch(h, 22); out.Result != nil || countStatus(out.Steps, trace.Found) != 0 {
		t.Error("miss reported as found")
	}

	out = HashDelete(h, 7)
	if got := out.Final.(*structure.HashTable).Buckets[2]; !slices.Equal(got, []int{12}) {
		t.Errorf("delete: %v", got)
	}
	if len(h.Buckets[2]) != 2 {
		t.Error("input mutated")
	}
	if err := out.Steps.Validate(); err != nil {
		t.Error(err)
	}

	out = HashInsert(h, -3)
	if got := out.Final.(*structure.HashTable).Buckets[2]; !slices.Contains(got, -3) {
		t.Errorf("negative value landed elsewhere: %v", out.Final)
	}
}
