// Package tasks holds the built-in plugin constructors ("shell", "icon",
// "_root") and registers them with internal/plugin from their own init()
// functions, so internal/plugin never imports this package (spec.md §4.7).
package tasks

import (
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/plugin"
	"github.com/C2SM/ethiopia/internal/temporal"
)

func init() {
	plugin.Register(configmodel.PluginShell, newShellTask)
}

// newShellTask builds a Task from a shell task declaration: tokenizes the
// CLI-argument template once (rather than at every access) and carries the
// command and env-source-files through verbatim.
//
// Ground: original_source/src/sirocco/core/_tasks/shell_task.py, which is a
// thin ConfigShellTaskSpecs+Task dataclass with no extra runtime behavior
// beyond what Task itself provides.
func newShellTask(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error) {
	tokens, err := configmodel.TokenizeCLIArguments(decl.CLIArguments)
	if err != nil {
		return nil, err
	}
	hints, err := hintsFrom(decl)
	if err != nil {
		return nil, err
	}
	t := &graph.Task{
		Name:       decl.Name,
		Coordinate: c,
		Plugin:     configmodel.PluginShell,
		Hints:      hints,
		Shell: &graph.ShellFields{
			Command:        decl.Command,
			Arguments:      tokens,
			EnvSourceFiles: append([]string(nil), decl.EnvSourceFiles...),
		},
	}
	return t, nil
}

// hintsFrom copies the scheduler-facing resource hints common to shell and
// icon tasks (spec.md §3/§4.5: host, account, uenv, nodes, walltime,
// conda_env — already merged in from ROOT by configmodel.ApplyRootDefaults
// by the time a Constructor sees the declaration).
func hintsFrom(decl *configmodel.TaskDecl) (graph.ResourceHints, error) {
	h := graph.ResourceHints{
		Host:     decl.Host,
		Account:  decl.Account,
		Nodes:    decl.Nodes,
		CondaEnv: decl.CondaEnv,
	}
	if len(decl.Uenv) > 0 {
		h.Uenv = make(map[string]string, len(decl.Uenv))
		for k, v := range decl.Uenv {
			h.Uenv[k] = v
		}
	}
	if decl.Walltime != "" {
		wt, err := temporal.ParseWalltime(decl.Walltime)
		if err != nil {
			return graph.ResourceHints{}, err
		}
		h.Walltime = &wt
	}
	return h, nil
}
