// Package backend sketches the consumption contract an external execution
// backend adapter uses against a resolved workflow.Workflow (spec.md §6:
// "the execution backend adapter that translates the resolved graph into an
// external workflow-engine representation" — out of scope as an
// implementation, but its contract against the core is sketched here).
// Ground: the teacher's backend-neutral adapter interfaces
// (engine/infra/cache/interfaces.go's KV/Lists/Hashes), which describe the
// operations a concrete driver must support without importing the driver.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/temporal"
	"github.com/C2SM/ethiopia/internal/workflow"
)

// Adapter is the contract a concrete execution-backend driver (e.g. a
// Cylc or sirocco-runtime translator) must satisfy to consume a resolved
// Workflow. No implementation ships here, and nothing in this module calls
// Submit: the `run` command in internal/cli builds the Workflow and
// optionally prints or renders it, without handing it to an Adapter.
type Adapter interface {
	// Submit translates wf into the backend's own representation and
	// schedules it for execution. Implementations must treat wf as
	// immutable: spec.md §5 guarantees all mutation happens-before this
	// call, so no synchronization is required to read it concurrently.
	Submit(ctx context.Context, wf *workflow.Workflow) error
}

// TaskView and DataView are the read-only shapes spec.md §6's "Resolved
// output API" promises a backend: every field a translator needs to emit
// one unit of work, with no access back into internal/graph's Store
// machinery.
type TaskView struct {
	Name       string
	Coordinate string
	Plugin     string
	Inputs     []string
	Outputs    []string
	WaitOn     []string
}

type DataView struct {
	Name       string
	Coordinate string
	Kind       string
	Src        string
	Available  bool
}

// Views flattens wf into the TaskView/DataView shape of spec.md §6's
// resolved-output API, in construction order, so an Adapter never needs
// to import internal/graph directly.
func Views(wf *workflow.Workflow) ([]TaskView, []DataView) {
	tasks := make([]TaskView, 0, len(wf.Tasks.Iterate()))
	for _, t := range wf.Tasks.Iterate() {
		tasks = append(tasks, TaskView{
			Name:       t.Name,
			Coordinate: coordString(t.Coordinate),
			Plugin:     t.Plugin,
			Inputs:     dataNames(t.Inputs),
			Outputs:    dataNames(t.Outputs),
			WaitOn:     taskNames(t.WaitOn),
		})
	}

	data := make([]DataView, 0, len(wf.Data.Iterate()))
	for _, d := range wf.Data.Iterate() {
		data = append(data, DataView{
			Name:       d.Name,
			Coordinate: coordString(d.Coordinate),
			Kind:       d.Kind,
			Src:        d.Src,
			Available:  d.Available,
		})
	}

	return tasks, data
}

func dataNames(items []*graph.Data) []string {
	names := make([]string, len(items))
	for i, d := range items {
		names[i] = d.Name
	}
	return names
}

func taskNames(items []*graph.Task) []string {
	names := make([]string, len(items))
	for i, t := range items {
		names[i] = t.Name
	}
	return names
}

// coordString renders a Coordinate as a stable "dim=value,dim=value" label
// for backend-side logging and diagnostics.
func coordString(c coord.Coordinate) string {
	dims := c.Dims()
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%s", d, coordValueString(c[d]))
	}
	return strings.Join(parts, ",")
}

func coordValueString(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(temporal.Layout)
	}
	return fmt.Sprintf("%v", v)
}
