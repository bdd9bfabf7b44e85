package algo

import (
	"github.com/san-kum/algoviz/internal/trace"
)

// initial records steps[0]: the input with every element in default status.
// It returns the working buffer, or nil when the input is empty and the
// single explanatory step has already been recorded.
func initial(b *trace.Builder, values []int, emptyMsg string) []trace.Element {
	el := trace.ElementsOf(values)
	if len(el) == 0 {
		b.Elements(el, trace.NoLine, "%s", emptyMsg)
		return nil
	}
	b.Elements(el, trace.NoLine, "Initial array: %v", values)
	return el
}

func finishSorted(b *trace.Builder, el []trace.Element, line int) {
	for i := range el {
		el[i].Status = trace.Sorted
	}
	b.Elements(el, line, "Array is sorted: %v", valuesOf(el))
}

func mark(el []trace.Element, st trace.Status, idx ...int) {
	for _, i := range idx {
		el[i].Status = st
	}
}

func BubbleSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			mark(el, trace.Comparing, j, j+1)
			b.Elements(el, 2, "Compare %d and %d", el[j].Value, el[j+1].Value)
			if el[j].Value > el[j+1].Value {
				el[j], el[j+1] = el[j+1], el[j]
				mark(el, trace.Swapping, j, j+1)
				b.Elements(el, 3, "%d > %d, swap them", el[j+1].Value, el[j].Value)
				swapped = true
			}
			mark(el, trace.Default, j, j+1)
		}
		last := n - i - 1
		el[last].Status = trace.Sorted
		b.Elements(el, 4, "%d is in its final position", el[last].Value)
		if !swapped {
			break
		}
	}
	finishSorted(b, el, 5)
	return b.Steps()
}

func SelectionSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}

	for i := 0; i < n-1; i++ {
		min := i
		el[min].Status = trace.Current
		b.Elements(el, 1, "Assume %d at index %d is the minimum", el[min].Value, min)
		for j := i + 1; j < n; j++ {
			el[j].Status = trace.Comparing
			b.Elements(el, 3, "Compare %d with current minimum %d", el[j].Value, el[min].Value)
			if el[j].Value < el[min].Value {
				el[min].Status = trace.Default
				min = j
				el[min].Status = trace.Current
				b.Elements(el, 3, "New minimum %d at index %d", el[min].Value, min)
			} else {
				el[j].Status = trace.Default
			}
		}
		if min != i {
			el[i], el[min] = el[min], el[i]
			mark(el, trace.Swapping, i, min)
			b.Elements(el, 4, "Swap %d into index %d", el[i].Value, i)
			el[min].Status = trace.Default
		}
		el[i].Status = trace.Sorted
		b.Elements(el, 5, "%d is in its final position", el[i].Value)
	}
	finishSorted(b, el, 6)
	return b.Steps()
}

func InsertionSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}

	for i := 1; i < n; i++ {
		el[i].Status = trace.Current
		b.Elements(el, 1, "Insert %d into the sorted prefix", el[i].Value)
		for j := i; j > 0; j-- {
			mark(el, trace.Comparing, j-1, j)
			b.Elements(el, 2, "Compare %d and %d", el[j-1].Value, el[j].Value)
			if el[j-1].Value <= el[j].Value {
				mark(el, trace.Default, j-1, j)
				break
			}
			el[j-1], el[j] = el[j], el[j-1]
			mark(el, trace.Swapping, j-1, j)
			b.Elements(el, 3, "Shift %d right", el[j].Value)
			mark(el, trace.Default, j-1, j)
		}
	}
	finishSorted(b, el, 4)
	return b.Steps()
}

// QuickSort uses Lomuto partitioning with the last element of each range as
// pivot. Ranges are processed from an explicit stack in the same order the
// recursive formulation would visit them.
func QuickSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}

	type span struct{ lo, hi int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.lo > r.hi {
			continue
		}
		if r.lo == r.hi {
			el[r.lo].Status = trace.Sorted
			b.Elements(el, 0, "Single element %d is in its final position", el[r.lo].Value)
			continue
		}

		p := partition(b, el, r.lo, r.hi)
		stack = append(stack, span{p + 1, r.hi}, span{r.lo, p - 1})
	}
	finishSorted(b, el, 7)
	return b.Steps()
}

func partition(b *trace.Builder, el []trace.Element, lo, hi int) int {
	pivot := el[hi].Value
	el[hi].Status = trace.Pivot
	b.Elements(el, 1, "Partition [%d..%d] around pivot %d", lo, hi, pivot)

	i := lo
	for j := lo; j < hi; j++ {
		el[j].Status = trace.Comparing
		b.Elements(el, 3, "Compare %d with pivot %d", el[j].Value, pivot)
		if el[j].Value < pivot {
			if i != j {
				el[i], el[j] = el[j], el[i]
				mark(el, trace.Swapping, i, j)
				b.Elements(el, 4, "%d < %d, swap into the lower partition", el[i].Value, pivot)
				el[j].Status = trace.Default
			}
			el[i].Status = trace.Default
			i++
		} else {
			el[j].Status = trace.Default
		}
	}

	if i != hi {
		el[i], el[hi] = el[hi], el[i]
		mark(el, trace.Swapping, i, hi)
		b.Elements(el, 5, "Move pivot %d to index %d", pivot, i)
		el[hi].Status = trace.Default
	}
	el[i].Status = trace.Sorted
	b.Elements(el, 5, "Pivot %d is in its final position", pivot)
	return i
}

// MergeSort merges in place: an element taken from the right run is rotated
// into position, so every comparison is between elements on screen.
func MergeSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}
	mergeSort(b, el, 0, n)
	finishSorted(b, el, 6)
	return b.Steps()
}

func mergeSort(b *trace.Builder, el []trace.Element, lo, hi int) {
	if hi-lo < 2 {
		return
	}
	mid := lo + (hi-lo)/2
	mergeSort(b, el, lo, mid)
	mergeSort(b, el, mid, hi)
	merge(b, el, lo, mid, hi)
}

func merge(b *trace.Builder, el []trace.Element, lo, mid, hi int) {
	b.Elements(el, 2, "Merge [%d..%d] with [%d..%d]", lo, mid-1, mid, hi-1)
	i, j := lo, mid
	for i < j && j < hi {
		mark(el, trace.Comparing, i, j)
		b.Elements(el, 3, "Compare %d and %d", el[i].Value, el[j].Value)
		if el[i].Value <= el[j].Value {
			mark(el, trace.Default, i, j)
			i++
			continue
		}
		moved := el[j]
		copy(el[i+1:j+1], el[i:j])
		el[i] = moved
		mark(el, trace.Default, i+1, j)
		el[i].Status = trace.Swapping
		b.Elements(el, 4, "Take %d from the right run", moved.Value)
		el[i].Status = trace.Default
		i++
		j++
	}
}

func HeapSort(values []int) trace.Steps {
	n := len(values)
	b := trace.NewBuilder(n*n + 2)
	el := initial(b, values, "Array is empty; nothing to sort")
	if el == nil {
		return b.Steps()
	}

	for i := n/2 - 1; i >= 0; i-- {
		siftDown(b, el, i, n)
	}
	b.Elements(el, 0, "Max heap built; largest value %d is at the root", el[0].Value)

	for end := n - 1; end > 0; end-- {
		el[0], el[end] = el[end], el[0]
		mark(el, trace.Swapping, 0, end)
		b.Elements(el, 3, "Move max %d to index %d", el[end].Value, end)
		el[0].Status = trace.Default
		el[end].Status = trace.Sorted
		b.Elements(el, 4, "%d is in its final position", el[end].Value)
		siftDown(b, el, 0, end)
	}
	finishSorted(b, el, 5)
	return b.Steps()
}

func siftDown(b *trace.Builder, el []trace.Element, i, size int) {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < size {
			mark(el, trace.Comparing, largest, left)
			b.Elements(el, 1, "Compare %d with left child %d", el[largest].Value, el[left].Value)
			mark(el, trace.Default, largest, left)
			if el[left].Value > el[largest].Value {
				largest = left
			}
		}
		if right < size {
			mark(el, trace.Comparing, largest, right)
			b.Elements(el, 1, "Compare %d with right child %d", el[largest].Value, el[right].Value)
			mark(el, trace.Default, largest, right)
			if el[right].Value > el[largest].Value {
				largest = right
			}
		}
		if largest == i {
			return
		}
		el[i], el[largest] = el[largest], el[i]
		mark(el, trace.Swapping, i, largest)
		b.Elements(el, 2, "Sift %d down", el[largest].Value)
		mark(el, trace.Default, i, largest)
		i = largest
	}
}
