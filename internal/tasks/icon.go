package tasks

import (
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/plugin"
)

func init() {
	plugin.Register(configmodel.PluginIcon, newIconTask)
}

// newIconTask builds a Task from an icon task declaration. The enclosing
// cycle's start/end dates are threaded in by the workflow builder (the
// declaration itself carries no notion of a cycle window) so that namelist
// assembly can later overlay experimentStartDate/experimentStopDate
// (SPEC_FULL §4.8) without the constructor needing to look the cycle back up.
//
// Ground: original_source/src/sirocco/core/_tasks/icon_task.py's
// IconTask(ConfigIconTaskSpecs, Task) — here ConfigIconTaskSpecs' fields
// (config_root, namelists) land on graph.IconFields instead of being
// inherited via dataclass composition.
func newIconTask(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error) {
	hints, err := hintsFrom(decl)
	if err != nil {
		return nil, err
	}
	namelists := make(map[string]graph.NamelistSpec, len(decl.Namelists))
	for name, spec := range decl.Namelists {
		namelists[name] = graph.NamelistSpec{Path: spec.Path, Specs: spec.Specs}
	}
	t := &graph.Task{
		Name:       decl.Name,
		Coordinate: c,
		Plugin:     configmodel.PluginIcon,
		Hints:      hints,
		Icon: &graph.IconFields{
			ConfigRoot: decl.ConfigRoot,
			Namelists:  namelists,
		},
	}
	return t, nil
}
