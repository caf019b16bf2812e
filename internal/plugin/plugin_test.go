package plugin_test

import (
	"testing"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	t.Run("Should look up a registered constructor by kind", func(t *testing.T) {
		const kind = "test-echo"
		plugin.Register(kind, func(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error) {
			return &graph.Task{Name: decl.Name, Coordinate: c, Plugin: kind}, nil
		})

		ctor, err := plugin.Lookup(kind)
		require.NoError(t, err)
		task, err := ctor(&configmodel.TaskDecl{Name: "T"}, coord.Coordinate{})
		require.NoError(t, err)
		assert.Equal(t, "T", task.Name)
		assert.Contains(t, plugin.Known(), kind)
	})

	t.Run("Should reject an unregistered kind with UnknownPluginError", func(t *testing.T) {
		_, err := plugin.Lookup("does-not-exist")
		require.Error(t, err)
		var unknown *plugin.UnknownPluginError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "does-not-exist", unknown.Kind)
	})

	t.Run("Should panic on double registration of the same kind", func(t *testing.T) {
		const kind = "test-duplicate"
		plugin.Register(kind, func(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error) {
			return &graph.Task{Name: decl.Name}, nil
		})
		assert.Panics(t, func() {
			plugin.Register(kind, func(decl *configmodel.TaskDecl, c coord.Coordinate) (*graph.Task, error) {
				return nil, nil
			})
		})
	})
}
