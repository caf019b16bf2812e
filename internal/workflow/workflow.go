// Package workflow implements the unrolling algorithm (spec.md §4.6): the
// strict four-pass construction that turns a validated configmodel.Workflow
// into a fully materialized, coordinate-indexed graph.Store triple.
package workflow

import (
	"fmt"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/plugin"

	// Registers the built-in shell/icon/_root plugin constructors.
	_ "github.com/C2SM/ethiopia/internal/tasks"
)

// Workflow is the resolved, immutable dependency graph: three Stores (tasks,
// data, cycles), iterable in construction order (spec.md §3/§6).
type Workflow struct {
	Name   string
	Tasks  *graph.Store[*graph.Task]
	Data   *graph.Store[*graph.Data]
	Cycles *graph.Store[*graph.Cycle]
}

// Build validates cfg and runs the four-pass unrolling algorithm. On any
// failure, no partial Workflow is returned (spec.md §5: "Failure during
// construction is fatal and total").
func Build(cfg *configmodel.Workflow) (*Workflow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mergedTasks, err := configmodel.ApplyRootDefaults(cfg.Tasks)
	if err != nil {
		return nil, err
	}
	taskByName := make(map[string]*configmodel.TaskDecl, len(mergedTasks))
	for i := range mergedTasks {
		taskByName[mergedTasks[i].Name] = &mergedTasks[i]
	}
	dataByName := cfg.DataByName()

	w := &Workflow{
		Name:   cfg.Name,
		Tasks:  graph.NewStore[*graph.Task](),
		Data:   graph.NewStore[*graph.Data](),
		Cycles: graph.NewStore[*graph.Cycle](),
	}

	if err := buildAvailableData(w, cfg); err != nil {
		return nil, err
	}
	if err := buildGeneratedData(w, cfg, dataByName); err != nil {
		return nil, err
	}
	if err := buildTasksAndCycles(w, cfg, taskByName); err != nil {
		return nil, err
	}
	if err := linkWaitOn(w); err != nil {
		return nil, err
	}
	return w, nil
}

// buildAvailableData is pass 1: one Data node per coordinate in
// CoordSpace(data.parameters, parameters, date=None), for every declared
// available-data entry.
func buildAvailableData(w *Workflow, cfg *configmodel.Workflow) error {
	for i := range cfg.Data.Available {
		d := &cfg.Data.Available[i]
		for _, c := range coord.Space(d.Parameters, cfg.Parameters, nil, false) {
			item := &graph.Data{Name: d.Name, Coordinate: c, Kind: d.Kind, Src: d.Src, Format: d.Format, Available: true}
			if err := w.Data.Add(item); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildGeneratedData is pass 2: for every cycle × date × task-ref × output
// name, one Data node per coordinate in CoordSpace(data.parameters,
// parameters, date) — the output's own declared parameters, not the task's.
func buildGeneratedData(w *Workflow, cfg *configmodel.Workflow, dataByName map[string]*configmodel.DataDecl) error {
	for ci := range cfg.Cycles {
		cycle := &cfg.Cycles[ci]
		start, end, period := cycleWindow(cfg, cycle)
		for _, date := range cycleDates(start, end, period) {
			for _, ref := range cycle.Tasks {
				for _, outSpec := range ref.Outputs {
					decl, ok := dataByName[outSpec.Name]
					if !ok {
						return fmt.Errorf("workflow: cycle %q task %q: output %q is not a declared data node", cycle.Name, ref.TaskName, outSpec.Name)
					}
					for _, c := range coord.Space(decl.Parameters, cfg.Parameters, date, true) {
						item := &graph.Data{Name: decl.Name, Coordinate: c, Kind: decl.Kind, Src: decl.Src, Format: decl.Format, Available: false}
						if err := w.Data.Add(item); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// buildTasksAndCycles is pass 3: for every cycle × date × task-ref ×
// coordinate in CoordSpace(task.parameters, parameters, date), resolve
// inputs and outputs, instantiate the plugin-dispatched Task, and record its
// wait-on specs for pass 4; then add one Cycle node per date.
func buildTasksAndCycles(w *Workflow, cfg *configmodel.Workflow, taskByName map[string]*configmodel.TaskDecl) error {
	for ci := range cfg.Cycles {
		cycle := &cfg.Cycles[ci]
		start, end, period := cycleWindow(cfg, cycle)
		for _, date := range cycleDates(start, end, period) {
			var cycleTasks []*graph.Task
			for _, ref := range cycle.Tasks {
				decl, ok := taskByName[ref.TaskName]
				if !ok {
					return fmt.Errorf("workflow: cycle %q: task %q is not a declared task", cycle.Name, ref.TaskName)
				}
				ctor, err := plugin.Lookup(decl.Plugin)
				if err != nil {
					return err
				}
				for _, c := range coord.Space(decl.Parameters, cfg.Parameters, date, true) {
					task, err := ctor(decl, c)
					if err != nil {
						return err
					}
					if task.Icon != nil {
						task.Icon.StartDate = start
						task.Icon.EndDate = end
					}
					if err := resolveInputs(w, ref, c, task); err != nil {
						return err
					}
					if err := resolveOutputs(w, ref, c, task); err != nil {
						return err
					}
					task.SetPendingWaitOn(ref.WaitOn)

					if err := w.Tasks.Add(task); err != nil {
						return err
					}
					cycleTasks = append(cycleTasks, task)
				}
			}
			cycleCoord := coord.Coordinate{coord.DateDim: date}
			if err := w.Cycles.Add(&graph.Cycle{Name: cycle.Name, Coordinate: cycleCoord, Tasks: cycleTasks}); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveInputs(w *Workflow, ref configmodel.CycleTaskRef, c coord.Coordinate, task *graph.Task) error {
	for _, inSpec := range ref.Inputs {
		items, err := w.Data.IterFromSpec(inSpec, c)
		if err != nil {
			return err
		}
		task.Inputs = append(task.Inputs, items...)
	}
	return nil
}

func resolveOutputs(w *Workflow, ref configmodel.CycleTaskRef, c coord.Coordinate, task *graph.Task) error {
	for _, outSpec := range ref.Outputs {
		item, err := w.Data.Get(outSpec.Name, c)
		if err != nil {
			return &UnresolvedOutputError{Task: task.Name, Coordinate: c, Output: outSpec.Name, Err: err}
		}
		task.Outputs = append(task.Outputs, item)
	}
	return nil
}

// linkWaitOn is pass 4: for every Task, resolve its pending wait-on specs
// against the Task store and set wait_on exactly once.
func linkWaitOn(w *Workflow) error {
	for _, task := range w.Tasks.Iterate() {
		var waitOn []*graph.Task
		for _, spec := range task.PendingWaitOnSpecs() {
			items, err := w.Tasks.IterFromSpec(spec, task.Coordinate)
			if err != nil {
				return err
			}
			waitOn = append(waitOn, items...)
		}
		task.Link(waitOn)
	}
	return nil
}
