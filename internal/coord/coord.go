// Package coord implements the coordinate and CoordSpace primitives of the
// unroller: the point in (date × parameters) space a graph item lives at,
// and the enumerable cartesian product a declaration multiplies over.
package coord

import "sort"

// DateDim is the reserved dimension name for temporal cycling.
const DateDim = "date"

// Value is a single coordinate value along one dimension. The core treats
// values as opaque — only equality and declared list order matter.
type Value = any

// Coordinate is a mapping from dimension name to a single value.
type Coordinate map[string]Value

// Equal reports whether two coordinates share the same dimension set and
// identical values per dimension.
func (c Coordinate) Equal(other Coordinate) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy.
func (c Coordinate) Clone() Coordinate {
	out := make(Coordinate, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Dims returns the coordinate's dimension names in sorted order. It is used
// for diagnostics, the pretty-printer, and the dimension tuple an Array
// freezes on its first insertion (see internal/graph).
func (c Coordinate) Dims() []string {
	dims := make([]string, 0, len(c))
	for k := range c {
		dims = append(dims, k)
	}
	sort.Strings(dims)
	return dims
}

// Space enumerates the ordered cartesian product of one optional date value
// with a list of declared parameter axes, each resolved against the
// workflow's parameter declarations.
//
// Order is deterministic: dimensions appear in the order the item declares
// them (date first, when present), and for each dimension the values appear
// in the order declared by the workflow parameter list — this is the
// ordering guarantee spec.md §4.3/§4.6 requires to be observable downstream.
func Space(paramRefs []string, parameters map[string][]Value, date any, hasDate bool) []Coordinate {
	dims := make([]string, 0, len(paramRefs)+1)
	axes := make([][]Value, 0, len(paramRefs)+1)
	if hasDate {
		dims = append(dims, DateDim)
		axes = append(axes, []Value{date})
	}
	for _, p := range paramRefs {
		dims = append(dims, p)
		axes = append(axes, parameters[p])
	}
	return product(dims, axes)
}

func product(dims []string, axes [][]Value) []Coordinate {
	if len(dims) == 0 {
		return []Coordinate{{}}
	}
	total := 1
	for _, a := range axes {
		total *= len(a)
	}
	out := make([]Coordinate, 0, total)
	var rec func(i int, acc Coordinate)
	rec = func(i int, acc Coordinate) {
		if i == len(dims) {
			out = append(out, acc.Clone())
			return
		}
		for _, v := range axes[i] {
			acc[dims[i]] = v
			rec(i+1, acc)
		}
		delete(acc, dims[i])
	}
	rec(0, Coordinate{})
	return out
}
