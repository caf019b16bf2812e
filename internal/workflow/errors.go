package workflow

import (
	"errors"
	"fmt"

	"github.com/C2SM/ethiopia/internal/coord"
)

// ErrUnresolvedOutput is the sentinel for a task-ref output that pass 3
// cannot find among pass 2's generated-data nodes (spec.md §7).
var ErrUnresolvedOutput = errors.New("workflow: output not resolved from generated data")

// UnresolvedOutputError reports the task, coordinate, and output name that
// pass 3 could not resolve against the data store, along with the
// underlying Store.Get failure (a NotFound or SchemaMismatch from
// internal/graph — mismatched parameter dims between a task and the output
// data it declares count as unresolved too, same as the source's bare
// KeyError from Store.__getitem__).
type UnresolvedOutputError struct {
	Task       string
	Coordinate coord.Coordinate
	Output     string
	Err        error
}

func (e *UnresolvedOutputError) Error() string {
	return fmt.Sprintf("task %q at %v: output %q not found among generated data: %v", e.Task, e.Coordinate, e.Output, e.Err)
}

func (e *UnresolvedOutputError) Unwrap() error { return e.Err }

func (e *UnresolvedOutputError) Is(target error) bool { return target == ErrUnresolvedOutput }
