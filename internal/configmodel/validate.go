package configmodel

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
)

// validate is the shared go-playground/validator instance used for the
// configuration model's closed-set field checks (data kind, parameter
// selector), mirroring the teacher's engine/schema composite-validator
// convention of layering a handful of focused validators rather than one
// monolithic struct-tag blob.
var validate = validator.New()

type dataKindCheck struct {
	Kind string `validate:"oneof=file dir"`
}

type selectorCheck struct {
	Selector string `validate:"omitempty,oneof=single all"`
}

// Validate checks every structural invariant spec.md §3/§4.5 names:
// cycle start<=end and positive period, reference-spec lag/date
// mutual-exclusion, closed-set selectors and data kinds, and that every
// parameter a task/data declares is itself declared workflow-wide.
func (w *Workflow) Validate() error {
	var errs []error

	declaredParams := make(map[string]bool, len(w.Parameters))
	for name := range w.Parameters {
		declaredParams[name] = true
	}

	taskNames := make(map[string]bool, len(w.Tasks))
	for i := range w.Tasks {
		task := &w.Tasks[i]
		taskNames[task.Name] = true
		if err := task.validate(declaredParams); err != nil {
			errs = append(errs, err)
		}
	}

	// Two available-data declarations sharing a name are deliberately NOT
	// rejected here: spec.md §9's Open Questions freezes that case as a
	// graph.DuplicateKeyError from the unroller's pass 1 (internal/workflow),
	// not a configuration-model validation error — this layer only checks
	// each declaration in isolation.
	for i := range w.Data.Available {
		d := &w.Data.Available[i]
		if err := d.validate(declaredParams); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range w.Data.Generated {
		d := &w.Data.Generated[i]
		if err := d.validate(declaredParams); err != nil {
			errs = append(errs, err)
		}
	}

	for i := range w.Cycles {
		if err := w.Cycles[i].validate(w, taskNames); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t *TaskDecl) validate(declaredParams map[string]bool) error {
	if t.Name == "" {
		return invalid("<task>", "name is required")
	}
	for _, p := range t.Parameters {
		if !declaredParams[p] {
			return invalid(t.Name, "references undeclared parameter %q", p)
		}
	}
	if t.Walltime != "" {
		if _, err := temporal.ParseWalltime(t.Walltime); err != nil {
			return invalid(t.Name, "invalid walltime: %v", err)
		}
	}
	return nil
}

func (d *DataDecl) validate(declaredParams map[string]bool) error {
	if d.Name == "" {
		return invalid("<data>", "name is required")
	}
	if err := validate.Struct(dataKindCheck{Kind: d.Kind}); err != nil {
		return invalid(d.Name, "type must be 'file' or 'dir', got %q", d.Kind)
	}
	for _, p := range d.Parameters {
		if !declaredParams[p] {
			return invalid(d.Name, "references undeclared parameter %q", p)
		}
	}
	return nil
}

func (c *CycleDecl) validate(w *Workflow, taskNames map[string]bool) error {
	if c.Name == "" {
		return invalid("<cycle>", "name is required")
	}
	start := c.StartDate
	if start == nil {
		start = w.StartDate
	}
	end := c.EndDate
	if end == nil {
		end = w.EndDate
	}
	if c.Period != nil && start == nil {
		return invalid(c.Name, "period given without a start_date (neither the cycle nor the workflow declares one)")
	}
	// Ground: original_source's ConfigWorkflow.start_date/end_date are
	// mandatory fields, with ConfigCycle.start_date/end_date optional and
	// falling back to them (_yaml_data_models.py's _to_core_cycle) — every
	// cycle always resolves to a concrete window, one way or the other.
	if start == nil {
		return invalid(c.Name, "has no start_date (neither the cycle nor the workflow declares one)")
	}
	if end == nil {
		return invalid(c.Name, "has no end_date (neither the cycle nor the workflow declares one)")
	}
	if start.After(*end) {
		return invalid(c.Name, "start_date %s lies after end_date %s", start, end)
	}
	if c.Period != nil && c.Period.LessEqualZero() {
		return invalid(c.Name, "period %s is negative or zero", c.Period)
	}
	for _, ref := range c.Tasks {
		if !taskNames[ref.TaskName] {
			return invalid(c.Name, "references undeclared task %q", ref.TaskName)
		}
		for _, in := range ref.Inputs {
			if err := validateRef(in); err != nil {
				return invalid(fmt.Sprintf("%s/%s", c.Name, ref.TaskName), "%v", err)
			}
		}
		for _, wo := range ref.WaitOn {
			if err := validateRef(wo); err != nil {
				return invalid(fmt.Sprintf("%s/%s", c.Name, ref.TaskName), "%v", err)
			}
		}
	}
	return nil
}

func validateRef(spec refspec.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	for dim, sel := range spec.Parameters {
		if err := validate.Struct(selectorCheck{Selector: string(sel)}); err != nil {
			return fmt.Errorf("parameter %q has invalid selector %q", dim, sel)
		}
	}
	if spec.When != nil {
		set := 0
		if spec.When.At != nil {
			set++
		}
		if spec.When.Before != nil {
			set++
		}
		if spec.When.After != nil {
			set++
		}
		if set > 1 {
			return fmt.Errorf("when-guard on %q sets more than one of at/before/after", spec.Name)
		}
	}
	return nil
}
