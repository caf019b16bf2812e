package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C2SM/ethiopia/internal/backend"
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
	"github.com/C2SM/ethiopia/internal/workflow"
)

func buildSampleWorkflow(t *testing.T) *workflow.Workflow {
	t.Helper()
	start, err := temporal.ParseDate("2025-01-01T00:00:00Z")
	require.NoError(t, err)
	cfg := &configmodel.Workflow{
		Name: "sample",
		Tasks: []configmodel.TaskDecl{
			{Name: "T", Plugin: configmodel.PluginShell, Command: "run.sh"},
		},
		Data: configmodel.DataDecls{
			Available: []configmodel.DataDecl{{Name: "A", Kind: "file"}},
			Generated: []configmodel.DataDecl{{Name: "B", Kind: "file"}},
		},
		Cycles: []configmodel.CycleDecl{{
			Name: "C1", StartDate: &start, EndDate: &start,
			Tasks: []configmodel.CycleTaskRef{{
				TaskName: "T",
				Inputs:   []refspec.Spec{{Name: "A"}},
				Outputs:  []refspec.Spec{{Name: "B"}},
			}},
		}},
	}
	w, err := workflow.Build(cfg)
	require.NoError(t, err)
	return w
}

func TestViews(t *testing.T) {
	t.Run("Should flatten a resolved workflow into backend-neutral views", func(t *testing.T) {
		wf := buildSampleWorkflow(t)

		tasks, data := backend.Views(wf)

		require.Len(t, tasks, 1)
		assert.Equal(t, "T", tasks[0].Name)
		assert.Equal(t, "shell", tasks[0].Plugin)
		assert.Equal(t, []string{"A"}, tasks[0].Inputs)
		assert.Equal(t, []string{"B"}, tasks[0].Outputs)
		assert.Contains(t, tasks[0].Coordinate, "date=2025-01-01T00:00:00Z")

		require.Len(t, data, 2)
		names := []string{data[0].Name, data[1].Name}
		assert.ElementsMatch(t, []string{"A", "B"}, names)
	})
}
