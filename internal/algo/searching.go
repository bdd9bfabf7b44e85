package algo

import (
	"sort"
	"strconv"

	"github.com/san-kum/algoviz/internal/trace"
)

// LinearSearch returns the trace and the index of target, or -1.
func LinearSearch(values []int, target int) (trace.Steps, int) {
	b := trace.NewBuilder(len(values) + 2)
	el := initial(b, values, "Array is empty; "+notFound(target))
	if el == nil {
		return b.Steps(), -1
	}

	for i := range el {
		el[i].Status = trace.Comparing
		b.Elements(el, 1, "Check index %d: %d == %d?", i, el[i].Value, target)
		if el[i].Value == target {
			el[i].Status = trace.Found
			b.Elements(el, 2, "Found %d at index %d", target, i)
			return b.Steps(), i
		}
		el[i].Status = trace.Visited
	}
	b.Elements(el, 3, "%s", notFound(target))
	return b.Steps(), -1
}

// BinarySearch expects sorted input. It records one step per halving of the
// search range; the comparison that ends the search doubles as the terminal
// step, which keeps the trace within ceil(log2 n)+2 steps.
func BinarySearch(values []int, target int) (trace.Steps, int) {
	b := trace.NewBuilder(bitsLen(len(values)) + 2)
	el := initial(b, values, "Array is empty; "+notFound(target))
	if el == nil {
		return b.Steps(), -1
	}

	lo, hi := 0, len(el)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		outside(el, lo, hi)
		v := el[mid].Value
		switch {
		case v == target:
			el[mid].Status = trace.Found
			b.Elements(el, 3, "Range [%d..%d], mid %d: %d == %d. Found at index %d", lo, hi, mid, v, target, mid)
			return b.Steps(), mid
		case v < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
		if lo > hi {
			markAll(el, trace.Visited)
			b.Elements(el, 6, "Range [%d..%d], mid %d: %d != %d and the range is exhausted. %s", lo, hi, mid, v, target, notFound(target))
			return b.Steps(), -1
		}
		el[mid].Status = trace.Comparing
		if v < target {
			b.Elements(el, 4, "Mid %d: %d < %d, search right half [%d..%d]", mid, v, target, lo, hi)
		} else {
			b.Elements(el, 5, "Mid %d: %d > %d, search left half [%d..%d]", mid, v, target, lo, hi)
		}
		el[mid].Status = trace.Default
	}
	return b.Steps(), -1
}

// outside tags every index not in [lo, hi] visited and resets the rest.
func outside(el []trace.Element, lo, hi int) {
	for i := range el {
		if i < lo || i > hi {
			el[i].Status = trace.Visited
		} else {
			el[i].Status = trace.Default
		}
	}
}

func bitsLen(n int) int {
	c := 0
	for n > 0 {
		n >>= 1
		c++
	}
	return c
}

// IsSorted reports whether values are in non-decreasing order.
func IsSorted(values []int) bool {
	return sort.IntsAreSorted(values)
}

func notFound(target int) string {
	return "Target " + strconv.Itoa(target) + " not found"
}

// MaxWindowSum slides a window of size k across values and returns the start
// of the window with the largest sum.
func MaxWindowSum(values []int, k int) (trace.Steps, int) {
	b := trace.NewBuilder(len(values) + 3)
	el := initial(b, values, "Array is empty; no window to slide")
	if el == nil {
		return b.Steps(), -1
	}
	n := len(el)
	if k <= 0 || k > n {
		return informational(el, "Window size "+strconv.Itoa(k)+" must be between 1 and "+strconv.Itoa(n)).Steps, -1
	}

	sum := 0
	for i := 0; i < k; i++ {
		sum += el[i].Value
	}
	window(el, 0, k)
	b.Elements(el, 1, "First window [0..%d] sums to %d", k-1, sum)
	best, bestStart := sum, 0

	for start := 1; start+k <= n; start++ {
		sum += el[start+k-1].Value - el[start-1].Value
		window(el, start, k)
		if sum > best {
			best, bestStart = sum, start
			b.Elements(el, 3, "Slide to [%d..%d]: drop %d, add %d, sum %d is the new best", start, start+k-1, el[start-1].Value, el[start+k-1].Value, sum)
		} else {
			b.Elements(el, 2, "Slide to [%d..%d]: drop %d, add %d, sum %d", start, start+k-1, el[start-1].Value, el[start+k-1].Value, sum)
		}
	}

	for i := range el {
		if i >= bestStart && i < bestStart+k {
			el[i].Status = trace.Optimal
		} else {
			el[i].Status = trace.Outside
		}
	}
	b.Elements(el, 4, "Best window [%d..%d] with sum %d", bestStart, bestStart+k-1, best)
	return b.Steps(), bestStart
}

func window(el []trace.Element, start, k int) {
	for i := range el {
		if i >= start && i < start+k {
			el[i].Status = trace.Window
		} else {
			el[i].Status = trace.Outside
		}
	}
}
