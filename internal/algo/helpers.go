package algo

import (
	"fmt"
	"strings"

	"github.com/san-kum/algoviz/internal/trace"
)

func valuesOf(el []trace.Element) []int {
	out := make([]int, len(el))
	for i, e := range el {
		out[i] = e.Value
	}
	return out
}

func markAll(el []trace.Element, st trace.Status) {
	for i := range el {
		el[i].Status = st
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
