package yamlconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/temporal"
)

// Load reads path, decodes it against spec.md §6's frozen document shape,
// expands `$VAR` references in command strings and data `src` values, and
// builds a configmodel.Workflow. It does not call Validate — callers
// compose Load with ApplyRootDefaults/Validate/workflow.Build themselves,
// the way the teacher's cli/config.go layers file-reading under the
// validation it triggers separately.
func Load(path string) (*configmodel.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlconfig: reading %s: %w", path, err)
	}
	var doc rawDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlconfig: parsing %s: %w", path, err)
	}
	return doc.toWorkflow()
}

func (doc *rawDoc) toWorkflow() (*configmodel.Workflow, error) {
	w := &configmodel.Workflow{Name: doc.Name, Parameters: doc.Parameters}

	if doc.StartDate != nil {
		t, err := temporal.ParseDate(*doc.StartDate)
		if err != nil {
			return nil, fmt.Errorf("yamlconfig: start_date: %w", err)
		}
		w.StartDate = &t
	}
	if doc.EndDate != nil {
		t, err := temporal.ParseDate(*doc.EndDate)
		if err != nil {
			return nil, fmt.Errorf("yamlconfig: end_date: %w", err)
		}
		w.EndDate = &t
	}

	for _, entry := range doc.Tasks {
		name, body, err := oneKey(entry, "tasks[]")
		if err != nil {
			return nil, err
		}
		task, err := body.toTaskDecl(name)
		if err != nil {
			return nil, fmt.Errorf("yamlconfig: task %q: %w", name, err)
		}
		w.Tasks = append(w.Tasks, task)
	}

	for _, entry := range doc.Data.Available {
		name, body, err := oneKey(entry, "data.available[]")
		if err != nil {
			return nil, err
		}
		w.Data.Available = append(w.Data.Available, body.toDataDecl(name, true))
	}
	for _, entry := range doc.Data.Generated {
		name, body, err := oneKey(entry, "data.generated[]")
		if err != nil {
			return nil, err
		}
		w.Data.Generated = append(w.Data.Generated, body.toDataDecl(name, false))
	}

	for _, entry := range doc.Cycles {
		name, body, err := oneKey(entry, "cycles[]")
		if err != nil {
			return nil, err
		}
		cycle, err := body.toCycleDecl(name)
		if err != nil {
			return nil, fmt.Errorf("yamlconfig: cycle %q: %w", name, err)
		}
		w.Cycles = append(w.Cycles, cycle)
	}

	return w, nil
}

func oneKey[T any](m map[string]T, where string) (string, T, error) {
	var zero T
	if len(m) != 1 {
		return "", zero, fmt.Errorf("yamlconfig: each %s entry must have exactly one key, got %d", where, len(m))
	}
	for name, body := range m {
		return name, body, nil
	}
	return "", zero, fmt.Errorf("yamlconfig: unreachable empty map in %s", where)
}

func (t rawTask) toTaskDecl(name string) (configmodel.TaskDecl, error) {
	decl := configmodel.TaskDecl{
		Name:           name,
		Plugin:         t.Plugin,
		Parameters:     t.Parameters,
		Command:        expandEnv(t.Command),
		CLIArguments:   t.CLIArguments,
		EnvSourceFiles: t.EnvSourceFiles,
		ConfigRoot:     t.ConfigRoot,
		Host:           t.Host,
		Account:        t.Account,
		Uenv:           t.Uenv,
		Nodes:          t.Nodes,
		Walltime:       t.Walltime,
		CondaEnv:       t.CondaEnv,
	}
	if len(t.Namelists) > 0 {
		decl.Namelists = make(map[string]configmodel.NamelistSpec, len(t.Namelists))
		for key, nl := range t.Namelists {
			decl.Namelists[key] = configmodel.NamelistSpec{Path: expandEnv(nl.Path), Specs: nl.Specs}
		}
	}
	return decl, nil
}

func (d rawData) toDataDecl(name string, available bool) configmodel.DataDecl {
	return configmodel.DataDecl{
		Name:       name,
		Kind:       d.Type,
		Src:        expandEnv(d.Src),
		Format:     d.Format,
		Available:  available,
		Parameters: d.Parameters,
	}
}

func (c rawCycle) toCycleDecl(name string) (configmodel.CycleDecl, error) {
	decl := configmodel.CycleDecl{Name: name}

	if c.StartDate != nil {
		t, err := temporal.ParseDate(*c.StartDate)
		if err != nil {
			return decl, fmt.Errorf("start_date: %w", err)
		}
		decl.StartDate = &t
	}
	if c.EndDate != nil {
		t, err := temporal.ParseDate(*c.EndDate)
		if err != nil {
			return decl, fmt.Errorf("end_date: %w", err)
		}
		decl.EndDate = &t
	}
	if c.Period != nil {
		d, err := temporal.ParseDuration(*c.Period)
		if err != nil {
			return decl, fmt.Errorf("period: %w", err)
		}
		decl.Period = &d
	}

	for _, entry := range c.Tasks {
		taskName, body, err := oneKey(entry, "tasks[]")
		if err != nil {
			return decl, err
		}
		ref := configmodel.CycleTaskRef{TaskName: taskName}
		if ref.Inputs, err = parseRefSpecs(body.Inputs); err != nil {
			return decl, fmt.Errorf("task %q inputs: %w", taskName, err)
		}
		if ref.Outputs, err = parseRefSpecs(body.Outputs); err != nil {
			return decl, fmt.Errorf("task %q outputs: %w", taskName, err)
		}
		if ref.WaitOn, err = parseRefSpecs(body.WaitOn); err != nil {
			return decl, fmt.Errorf("task %q wait_on: %w", taskName, err)
		}
		decl.Tasks = append(decl.Tasks, ref)
	}
	return decl, nil
}

// expandEnv applies `$VAR`/`${VAR}` expansion to command strings and data
// src values (spec.md §6's CLI surface). An unset variable expands to the
// empty string, matching os.Expand/os.ExpandEnv's standard behavior.
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return os.Expand(s, os.Getenv)
}
