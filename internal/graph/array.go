package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/refspec"
)

// axis is an insertion-ordered value set for one dimension. Plain Go maps
// don't preserve iteration order; the broadcast (`all`) resolution in
// ResolveSpec must replay values in the order they were first observed (the
// workflow's declared parameter order, since Pass 1/2 insert Data nodes by
// walking CoordSpace in that order) for the determinism property of
// spec.md §8 to hold.
type axis struct {
	values []any
	seen   map[any]bool
}

func newAxis() *axis {
	return &axis{seen: make(map[any]bool)}
}

func (a *axis) add(v any) {
	if a.seen[v] {
		return
	}
	a.seen[v] = true
	a.values = append(a.values, v)
}

func (a *axis) has(v any) bool { return a.seen[v] }

// Array is a multi-dimensional, coordinate-indexed map of GraphItem values
// with a schema deferred to first insertion (spec.md §4.1).
type Array[T GraphItem] struct {
	name        string
	initialized bool
	dims        []string
	axes        map[string]*axis
	order       []string
	items       map[string]T
}

// NewArray creates an empty, schema-less Array.
func NewArray[T GraphItem](name string) *Array[T] {
	return &Array[T]{name: name, items: make(map[string]T)}
}

// dimsOf returns nil for an empty coordinate rather than a non-nil
// zero-length slice, so a zero-dim Array's frozen dims (set from the first
// Insert's dimsOf) compares equal (by identity with nil) across calls —
// make([]string, 0, 0) is non-nil in Go, which would otherwise make a
// zero-dim Array indistinguishable from "no schema frozen yet" nowhere and
// break the Store-level scalar/array dispatch in store.go. A non-empty
// coordinate yields its dimension names sorted: a Coordinate map keeps no
// key order, and a fixed order keeps the frozen dims, and with them
// ResolveSpec's enumeration order, the same across runs.
func (a *Array[T]) dimsOf(c coord.Coordinate) []string {
	if len(c) == 0 {
		return nil
	}
	return c.Dims()
}

func sameDims(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, d := range a {
		seen[d] = true
	}
	for _, d := range b {
		if !seen[d] {
			return false
		}
	}
	return true
}

func keyFor(dims []string, c coord.Coordinate) string {
	var sb strings.Builder
	for i, d := range dims {
		if i > 0 {
			sb.WriteByte('\x1f')
		}
		fmt.Fprintf(&sb, "%v", c[d])
	}
	return sb.String()
}

// Insert adds item at coordinate c. The first insertion fixes the Array's
// dimension tuple (the coordinate's dimension names, sorted); later insertions with a
// different dimension set fail with SchemaMismatchError, and a repeated
// coordinate fails with DuplicateKeyError.
func (a *Array[T]) Insert(c coord.Coordinate, item T) error {
	inputDims := a.dimsOf(c)
	if !a.initialized {
		a.initialized = true
		a.dims = inputDims
		a.axes = make(map[string]*axis, len(a.dims))
		for _, d := range a.dims {
			a.axes[d] = newAxis()
		}
	} else if !sameDims(a.dims, inputDims) {
		return &SchemaMismatchError{Array: a.name, Got: inputDims, Want: a.dims}
	}
	key := keyFor(a.dims, c)
	if _, exists := a.items[key]; exists {
		return &DuplicateKeyError{Array: a.name, Key: key}
	}
	for _, d := range a.dims {
		a.axes[d].add(c[d])
	}
	a.items[key] = item
	a.order = append(a.order, key)
	return nil
}

// Get returns the item at coordinate c.
func (a *Array[T]) Get(c coord.Coordinate) (T, error) {
	var zero T
	inputDims := a.dimsOf(c)
	if !sameDims(a.dims, inputDims) {
		return zero, &SchemaMismatchError{Array: a.name, Got: inputDims, Want: a.dims}
	}
	key := keyFor(a.dims, c)
	item, ok := a.items[key]
	if !ok {
		return zero, &NotFoundError{Name: a.name, Key: key}
	}
	return item, nil
}

// Iterate yields items in insertion order.
func (a *Array[T]) Iterate() []T {
	out := make([]T, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, a.items[k])
	}
	return out
}

// Len reports the number of items currently stored.
func (a *Array[T]) Len() int { return len(a.order) }

// Dims returns the Array's frozen dimension tuple, or nil both before any
// Insert and for a zero-dim (globally-available) item — Store distinguishes
// the two by construction, since an Array only exists in a Store once
// something has been inserted into it.
func (a *Array[T]) Dims() []string { return a.dims }

// ResolveSpec resolves a reference spec against this Array, per spec.md
// §4.1: broadcasting or selecting along each dimension, and treating `date`
// specially (absolute dates, lags relative to the reference coordinate, or
// the reference's own date when neither is given).
func (a *Array[T]) ResolveSpec(spec refspec.Spec, reference coord.Coordinate) ([]T, error) {
	hasDateDim := false
	for _, d := range a.dims {
		if d == coord.DateDim {
			hasDateDim = true
		}
	}
	if !hasDateDim && (len(spec.Lag) > 0 || len(spec.Date) > 0) {
		return nil, &ReferenceError{Kind: ErrDateDimMissing, TargetName: a.name, SpecName: spec.Name}
	}
	refDate, refHasDate := reference[coord.DateDim].(time.Time)
	if hasDateDim && !refHasDate && len(spec.Date) == 0 {
		return nil, &ReferenceError{Kind: ErrDateReferenceRequired, TargetName: a.name, SpecName: spec.Name}
	}

	candidates := make([][]any, len(a.dims))
	for i, d := range a.dims {
		switch {
		case d == coord.DateDim:
			vals, err := a.resolveDateDim(spec, refDate)
			if err != nil {
				return nil, err
			}
			candidates[i] = vals
		case spec.Parameters[d] == refspec.Single:
			candidates[i] = []any{reference[d]}
		default:
			candidates[i] = a.axes[d].values
		}
	}

	var out []T
	var walk func(i int, acc coord.Coordinate)
	var walkErr error
	walk = func(i int, acc coord.Coordinate) {
		if walkErr != nil {
			return
		}
		if i == len(a.dims) {
			item, err := a.Get(acc)
			if err != nil {
				walkErr = err
				return
			}
			out = append(out, item)
			return
		}
		for _, v := range candidates[i] {
			acc[a.dims[i]] = v
			walk(i+1, acc)
			if walkErr != nil {
				return
			}
		}
	}
	walk(0, coord.Coordinate{})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

func (a *Array[T]) resolveDateDim(spec refspec.Spec, refDate time.Time) ([]any, error) {
	var vals []any
	if len(spec.Lag) == 0 && len(spec.Date) == 0 {
		vals = append(vals, refDate)
	} else {
		for _, lag := range spec.Lag {
			vals = append(vals, lag.AddTo(refDate))
		}
		for _, d := range spec.Date {
			vals = append(vals, d)
		}
	}
	axis := a.axes[coord.DateDim]
	for _, v := range vals {
		if axis != nil && !axis.has(v) {
			return nil, &ReferenceError{Kind: ErrOutOfRange, TargetName: a.name, SpecName: spec.Name}
		}
	}
	return vals, nil
}
