// Package plugin is the static name-keyed constructor registry that maps a
// task's declared plugin kind ("shell", "icon", "_root") to the code that
// turns a configmodel.TaskDecl into a graph.Task (spec.md §4.7).
//
// Ground: the teacher keeps a package-level registry of constructors behind
// an init()-time Register call rather than a runtime factory switch —
// engine/llm/service.go's provider registry and engine/mcp-proxy's transport
// registry both follow this shape. Plugins here follow suit: internal/tasks
// registers "shell"/"icon"/"_root" from its own init() functions, so
// plugin never needs to import tasks (no cycle), and a new plugin kind can
// be added by writing a new file in internal/tasks and nothing else.
package plugin

import (
	"sort"
	"sync"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/graph"
)

// Constructor builds one runtime Task instance of a plugin's kind, at the
// given coordinate, from its static declaration. Implementations are
// expected to populate the Task's plugin-specific field (Shell/Icon/Root)
// and leave Inputs/Outputs/WaitOn/pendingWaitOn to the workflow builder.
type Constructor func(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register binds a plugin kind to its constructor. It is meant to be called
// from an init() function; calling it twice for the same kind is a
// programming error, not a recoverable runtime condition.
func Register(kind string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[kind]; exists {
		panic(&AlreadyRegisteredError{Kind: kind})
	}
	registry[kind] = ctor
}

// Lookup returns the constructor registered for kind, or UnknownPlugin if
// none was registered.
func Lookup(kind string) (Constructor, error) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := registry[kind]
	if !ok {
		return nil, &UnknownPluginError{Kind: kind, Known: knownLocked()}
	}
	return ctor, nil
}

// Known lists every registered plugin kind, sorted for deterministic error
// messages and diagnostics.
func Known() []string {
	mu.RLock()
	defer mu.RUnlock()
	return knownLocked()
}

func knownLocked() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
