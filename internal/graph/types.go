// Package graph implements the runtime, coordinate-indexed graph: Array and
// Store (§4.1/§4.2), and the Data/Cycle/Task records they hold (§3 "GraphItem").
//
// Task is a single struct carrying one pointer per plugin kind (Shell/Icon/
// Root), following the teacher's discriminated-config-struct convention
// (engine/domain/task/config.go keeps "Basic task properties" and "Decision
// task properties" side by side on one Config, switched on Type) rather than
// a Go interface hierarchy — spec.md §9 asks for a tagged variant, and a
// single struct with a Plugin discriminant plays that role without forcing
// every caller through a type switch.
package graph

import (
	"time"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/refspec"
)

// GraphItem is the common shape of every runtime record the Store indexes.
type GraphItem interface {
	ItemName() string
	ItemCoordinate() coord.Coordinate
}

// Data is the runtime record of a data node: an available input or a
// generated output, at one coordinate.
type Data struct {
	Name       string
	Coordinate coord.Coordinate
	Kind       string // "file" | "dir"
	Src        string
	Format     string // optional, e.g. "netcdf" | "grib"
	Available  bool
}

func (d *Data) ItemName() string                 { return d.Name }
func (d *Data) ItemCoordinate() coord.Coordinate { return d.Coordinate }

// Cycle is the runtime record of one cycle instance: a date (or none, for a
// non-periodic workflow) and the ordered list of Tasks it contains.
type Cycle struct {
	Name       string
	Coordinate coord.Coordinate
	Tasks      []*Task
}

func (c *Cycle) ItemName() string                 { return c.Name }
func (c *Cycle) ItemCoordinate() coord.Coordinate { return c.Coordinate }

// ShellFields carries the shell-plugin-specific task fields.
type ShellFields struct {
	Command       string
	Arguments     []ArgToken
	EnvSourceFiles []string
}

// ArgToken is one element of a tokenized `cli_arguments` template (§4.9).
type ArgToken struct {
	Kind      ArgKind
	Literal   string // Kind == ArgLiteral
	DataName  string // Kind == ArgPositional | ArgOption
	OptionTag string // Kind == ArgOption
}

type ArgKind int

const (
	ArgLiteral ArgKind = iota
	ArgPositional
	ArgOption
)

// NamelistSpec is one `namelists` entry declared on an icon task (§4.8).
type NamelistSpec struct {
	Path  string
	Specs map[string]map[string]any
}

// IconFields carries the icon-plugin-specific task fields.
type IconFields struct {
	ConfigRoot string
	Namelists  map[string]NamelistSpec
	StartDate  time.Time
	EndDate    time.Time

	// assembled lazily by internal/tasks on first access; nil until then.
	// Keyed namelist name -> section name, where a section value is either
	// map[string]any (an ordinary section) or []map[string]any (a repeated
	// section addressed by a user `name[k]` index), mirroring f90nml's own
	// repeated-section handling (ground: icon_task.py's section_index).
	assembled map[string]map[string]any
}

// Assembled returns the namelist set built by AssembleNamelists, if any.
func (f *IconFields) Assembled() map[string]map[string]any { return f.assembled }

// SetAssembled stores the namelist set built by AssembleNamelists.
func (f *IconFields) SetAssembled(v map[string]map[string]any) { f.assembled = v }

// RootFields is the empty `_root` plugin field group. The ROOT task's
// defaults are merged into its siblings by configmodel.ApplyRootDefaults
// before unrolling; RootFields itself holds no values.
type RootFields struct{}

// ResourceHints are the scheduler-facing fields common to shell/icon tasks.
type ResourceHints struct {
	Host      string
	Account   string
	Uenv      map[string]string
	Nodes     int
	Walltime  *time.Time
	CondaEnv  string
}

// Task is the runtime record of one task instance.
type Task struct {
	Name       string
	Coordinate coord.Coordinate
	Plugin     string

	Inputs  []*Data
	Outputs []*Data
	WaitOn  []*Task // set exactly once, during pass 4

	Hints ResourceHints

	Shell *ShellFields
	Icon  *IconFields
	Root  *RootFields

	pendingWaitOn []refspec.Spec
	linked        bool
}

func (t *Task) ItemName() string                 { return t.Name }
func (t *Task) ItemCoordinate() coord.Coordinate { return t.Coordinate }

// SetPendingWaitOn records the wait-on specs to resolve in pass 4 (spec.md
// §4.6/§9 "two-pass construction for forward references").
func (t *Task) SetPendingWaitOn(specs []refspec.Spec) { t.pendingWaitOn = specs }

// PendingWaitOnSpecs returns the specs recorded for pass 4.
func (t *Task) PendingWaitOnSpecs() []refspec.Spec { return t.pendingWaitOn }

// Link sets WaitOn exactly once; a second call is a programming error in the
// builder and panics rather than silently overwriting a published Task.
func (t *Task) Link(waitOn []*Task) {
	if t.linked {
		panic("graph: Task.Link called twice for " + t.Name)
	}
	t.WaitOn = waitOn
	t.linked = true
}
