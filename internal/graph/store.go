package graph

import (
	"time"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/refspec"
)

// Store is a name-keyed collection of Arrays, homogeneous in item type but
// polymorphic in dimensions per name (spec.md §4.2).
type Store[T GraphItem] struct {
	arrays map[string]*Array[T]
	order  []T
}

// NewStore creates an empty Store.
func NewStore[T GraphItem]() *Store[T] {
	return &Store[T]{arrays: make(map[string]*Array[T])}
}

// Add inserts item, creating its Array lazily on first use for that name.
func (s *Store[T]) Add(item T) error {
	name := item.ItemName()
	arr, ok := s.arrays[name]
	if !ok {
		arr = NewArray[T](name)
		s.arrays[name] = arr
	}
	if err := arr.Insert(item.ItemCoordinate(), item); err != nil {
		return err
	}
	s.order = append(s.order, item)
	return nil
}

// Get looks up name at coordinate c. An empty coordinate against a
// dimensioned Array fails with CoordinateRequired; a coordinate against a
// zero-dim Array fails with UnexpectedCoordinate.
func (s *Store[T]) Get(name string, c coord.Coordinate) (T, error) {
	var zero T
	arr, ok := s.arrays[name]
	if !ok {
		return zero, &NotFoundError{Name: name}
	}
	if arr.Dims() == nil {
		if len(c) != 0 {
			return zero, &CoordinateArityError{Name: name, Dimensions: false}
		}
		return arr.Get(coord.Coordinate{})
	}
	if len(c) == 0 {
		return zero, &CoordinateArityError{Name: name, Dimensions: true}
	}
	return arr.Get(c)
}

// Array exposes the underlying Array for name, if any, for callers (e.g.
// plugin constructors) that need direct coordinate-space introspection.
func (s *Store[T]) Array(name string) (*Array[T], bool) {
	arr, ok := s.arrays[name]
	return arr, ok
}

// IterFromSpec resolves spec against reference: applies the optional `when`
// temporal guard (yielding nothing on mismatch), then delegates to the
// target Array's ResolveSpec, or — for a zero-dim (globally available) item
// — requires the spec carry no date/lag/parameters selectors.
func (s *Store[T]) IterFromSpec(spec refspec.Spec, reference coord.Coordinate) ([]T, error) {
	if spec.When != nil {
		satisfied, err := s.guardSatisfied(spec, reference)
		if err != nil {
			return nil, err
		}
		if !satisfied {
			return nil, nil
		}
	}

	arr, ok := s.arrays[spec.Name]
	if !ok {
		return nil, &NotFoundError{Name: spec.Name}
	}
	if arr.Dims() != nil {
		return arr.ResolveSpec(spec, reference)
	}
	if len(spec.Lag) > 0 || len(spec.Date) > 0 || len(spec.Parameters) > 0 {
		return nil, &ReferenceError{Kind: ErrScalarMisreferenced, TargetName: spec.Name, SpecName: spec.Name}
	}
	item, err := arr.Get(coord.Coordinate{})
	if err != nil {
		return nil, err
	}
	return []T{item}, nil
}

func (s *Store[T]) guardSatisfied(spec refspec.Spec, reference coord.Coordinate) (bool, error) {
	raw, hasDate := reference[coord.DateDim]
	var refDate *time.Time
	if hasDate {
		if t, ok := raw.(time.Time); ok {
			refDate = &t
		}
	}
	satisfied, ok := spec.When.Satisfied(refDate)
	if !ok {
		return false, &ReferenceError{Kind: ErrGuardNeedsDate, TargetName: spec.Name, SpecName: spec.Name}
	}
	return satisfied, nil
}

// Iterate yields every item ever added, in construction order — the
// ordering guarantee of spec.md §4.6/§5.
func (s *Store[T]) Iterate() []T { return s.order }
