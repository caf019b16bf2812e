// Package configmodel holds the pure, validated value objects that capture
// a workflow's declarative description: tasks, data, cycles, parameters,
// and the cross-reference specs that tie them together (spec.md §3/§4.5).
//
// These types are plain structs, not the hardened schema-validation layer
// spec.md places out of scope (§1) — validation here only enforces the
// structural invariants the builder (internal/workflow) depends on to stay
// correct, mirroring the teacher's per-domain Config+Validate() pattern
// (engine/domain/task/config.go, engine/domain/workflow/config.go).
package configmodel

import (
	"time"

	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
)

// Plugin kinds built into the core.
const (
	PluginShell = "shell"
	PluginIcon  = "icon"
	PluginRoot  = "_root"
)

// RootTaskName is the literal YAML task key that supplies merged-in
// defaults for its sibling tasks (spec.md §3/§6: "a special `ROOT` task").
const RootTaskName = "ROOT"

// NamelistSpec is one `namelists` entry on an icon task (SPEC_FULL §3/§4.8).
type NamelistSpec struct {
	Path  string                    `yaml:"path"`
	Specs map[string]map[string]any `yaml:"specs"`
}

// TaskDecl is a task declaration: name, plugin kind, parameter list, plus
// kind-specific specs.
type TaskDecl struct {
	Name       string
	Plugin     string
	Parameters []string

	// shell
	Command       string
	CLIArguments  string
	EnvSourceFiles []string

	// icon
	ConfigRoot string
	Namelists  map[string]NamelistSpec

	// resource hints, mergeable from ROOT
	Host     string
	Account  string
	Uenv     map[string]string
	Nodes    int
	Walltime string
	CondaEnv string
}

// DataDecl is a data declaration: name, kind, source path, availability,
// parameter list.
type DataDecl struct {
	Name       string
	Kind       string // "file" | "dir"
	Src        string
	Format     string // optional, e.g. "netcdf" | "grib"
	Available  bool
	Parameters []string
}

// CycleTaskRef is one task-ref inside a cycle: its inputs, outputs, and
// wait-on specs.
type CycleTaskRef struct {
	TaskName string
	Inputs   []refspec.Spec
	Outputs  []refspec.Spec
	WaitOn   []refspec.Spec
}

// CycleDecl is a cycle declaration.
type CycleDecl struct {
	Name      string
	Tasks     []CycleTaskRef
	StartDate *time.Time
	EndDate   *time.Time
	Period    *temporal.Duration
}

// DataDecls groups the available and generated data declarations.
type DataDecls struct {
	Available []DataDecl
	Generated []DataDecl
}

// Workflow is the top-level, validated configuration model (spec.md §3
// "Workflow", §6 "Configuration input").
type Workflow struct {
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
	Parameters map[string][]any
	Tasks      []TaskDecl
	Data       DataDecls
	Cycles     []CycleDecl
}

// TaskByName indexes Tasks by name for O(1) lookup during unrolling.
func (w *Workflow) TaskByName() map[string]*TaskDecl {
	out := make(map[string]*TaskDecl, len(w.Tasks))
	for i := range w.Tasks {
		out[w.Tasks[i].Name] = &w.Tasks[i]
	}
	return out
}

// DataByName indexes both available and generated Data declarations by name.
func (w *Workflow) DataByName() map[string]*DataDecl {
	out := make(map[string]*DataDecl, len(w.Data.Available)+len(w.Data.Generated))
	for i := range w.Data.Available {
		out[w.Data.Available[i].Name] = &w.Data.Available[i]
	}
	for i := range w.Data.Generated {
		out[w.Data.Generated[i].Name] = &w.Data.Generated[i]
	}
	return out
}
