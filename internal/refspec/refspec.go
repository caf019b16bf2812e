// Package refspec defines the reference-spec value objects by which one
// cycle-task names its inputs, outputs, or wait-on targets: a target name,
// optional absolute dates or lags (mutually exclusive), a per-dimension
// parameter selector, and an optional temporal guard. These are pure value
// objects shared by the configuration model (which declares them) and the
// graph package (which resolves them against a Store) — kept in their own
// package so neither of those needs to import the other.
package refspec

import (
	"time"

	"github.com/C2SM/ethiopia/internal/temporal"
)

// Selector is how a reference spec treats one parameter dimension.
type Selector string

const (
	// Single restricts resolution to the referencing coordinate's own value.
	Single Selector = "single"
	// All broadcasts resolution across every value observed on that axis.
	All Selector = "all"
)

// Guard is the optional `when` temporal predicate on a reference spec. At
// most one of At/Before/After may be set; the zero value is always
// satisfied.
type Guard struct {
	At     *time.Time
	Before *time.Time
	After  *time.Time
}

// hasPredicate reports whether the guard sets at least one of
// At/Before/After.
func (g Guard) hasPredicate() bool {
	return g.At != nil || g.Before != nil || g.After != nil
}

// Satisfied reports whether refDate (which may be absent) satisfies the
// guard. ok is false when the guard needs a date that wasn't supplied.
func (g Guard) Satisfied(refDate *time.Time) (satisfied bool, ok bool) {
	if !g.hasPredicate() {
		return true, true
	}
	if refDate == nil {
		return false, false
	}
	if g.At != nil {
		return refDate.Equal(*g.At), true
	}
	if g.Before != nil {
		return refDate.Before(*g.Before), true
	}
	return refDate.After(*g.After), true
}

// Spec is one reference: how a task-ref names an input, output, or wait-on
// target.
type Spec struct {
	Name       string
	Date       []time.Time
	Lag        []temporal.Duration
	Parameters map[string]Selector
	When       *Guard
}

// Validate enforces the date/lag mutual-exclusion invariant.
func (s Spec) Validate() error {
	if len(s.Date) > 0 && len(s.Lag) > 0 {
		return ErrLagDateMutex
	}
	return nil
}
