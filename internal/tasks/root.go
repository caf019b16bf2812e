package tasks

import (
	"fmt"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/plugin"
)

func init() {
	plugin.Register(configmodel.PluginRoot, newRootTask)
}

// newRootTask exists only so "_root" is a known plugin kind (spec.md §4.7
// lists shell/icon/_root as the three built-ins); it is never actually
// invoked in a well-formed workflow, because configmodel.ApplyRootDefaults
// strips the ROOT task declaration out of the task list before the builder
// ever reaches pass 3's plugin dispatch. Reaching this constructor means a
// non-ROOT task declared plugin: _root, which is a configuration error.
func newRootTask(decl *configmodel.TaskDecl, _ coord.Coordinate) (*graph.Task, error) {
	return nil, fmt.Errorf("tasks: %q uses the _root plugin but is not the ROOT task", decl.Name)
}
