package graph

import (
	"errors"
	"fmt"
)

// Sentinel kinds, mirroring the teacher's per-package "canonical,
// backend-neutral errors" convention (engine/infra/cache/errors.go,
// engine/auth/user/errors.go): every struct error below answers true to
// errors.Is against the matching sentinel, so callers that only care about
// the kind never need to type-switch.
var (
	ErrSchemaMismatch        = errors.New("graph: coordinate dimensions don't match array")
	ErrDuplicateKey          = errors.New("graph: duplicate coordinate")
	ErrNotFound              = errors.New("graph: item not found")
	ErrCoordinateRequired    = errors.New("graph: coordinate required for a dimensioned item")
	ErrUnexpectedCoordinate  = errors.New("graph: unexpected coordinate for a scalar item")
	ErrDateDimMissing        = errors.New("graph: reference has no date dimension")
	ErrDateReferenceRequired = errors.New("graph: reference requires a date")
	ErrGuardNeedsDate        = errors.New("graph: temporal guard requires a reference date")
	ErrOutOfRange            = errors.New("graph: lag produced a date outside the target axis")
	ErrScalarMisreferenced   = errors.New("graph: scalar item referenced with date/lag/parameters")
)

// SchemaMismatchError reports that a coordinate's dimension tuple disagrees
// with the Array it is being inserted into or looked up from.
type SchemaMismatchError struct {
	Array string
	Got   []string
	Want  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("array %q: coordinate dims %v don't match array dims %v", e.Array, e.Got, e.Want)
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// DuplicateKeyError reports a coordinate already occupied in an Array.
type DuplicateKeyError struct {
	Array string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("array %q: key %s already used, cannot set item twice", e.Array, e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// NotFoundError reports a missing name (in a Store) or coordinate (in an
// Array).
type NotFoundError struct {
	Name string
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("entry %q not found", e.Name)
	}
	return fmt.Sprintf("entry %q has no item at coordinate %s", e.Name, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CoordinateArityError reports a scalar/array mismatch at lookup time.
type CoordinateArityError struct {
	Name       string
	Dimensions bool
}

func (e *CoordinateArityError) Error() string {
	if e.Dimensions {
		return fmt.Sprintf("entry %q is dimensioned, a coordinate is required", e.Name)
	}
	return fmt.Sprintf("entry %q is scalar, no coordinate may be given", e.Name)
}

func (e *CoordinateArityError) Is(target error) bool {
	if e.Dimensions {
		return target == ErrCoordinateRequired
	}
	return target == ErrUnexpectedCoordinate
}

// ReferenceError reports a misuse of a reference spec against a target
// Array or Store entry: a bad date/lag/parameters combination, a guard
// needing a date that is absent, or a lag landing outside the target's
// recorded date axis. It carries the target name and the spec name. The
// Reference field (the referencing coordinate) is not filled in by Array or
// Store, so in the errors they return it is empty.
type ReferenceError struct {
	Kind       error
	TargetName string
	Reference  string
	SpecName   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("resolving %s (from %s referencing %q): %v", e.SpecName, e.Reference, e.TargetName, e.Kind)
}

func (e *ReferenceError) Unwrap() error { return e.Kind }

func (e *ReferenceError) Is(target error) bool { return target == e.Kind }
