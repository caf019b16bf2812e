package prettyprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/prettyprint"
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

func TestFormat(t *testing.T) {
	t.Run("Should render a deterministic tree with task inputs and outputs", func(t *testing.T) {
		w := buildSampleWorkflow(t)
		out := prettyprint.New().Format(w)

		assert.Contains(t, out, "cycles:")
		assert.Contains(t, out, "C1 [date=2025-01-01T00:00:00Z]:")
		assert.Contains(t, out, "tasks:")
		assert.Contains(t, out, "T [date=2025-01-01T00:00:00Z]:")
		assert.Contains(t, out, "input:")
		assert.Contains(t, out, "- A")
		assert.Contains(t, out, "output:")
		assert.Contains(t, out, "- B")
	})

	t.Run("Should be byte-identical across two runs from the same workflow", func(t *testing.T) {
		w := buildSampleWorkflow(t)
		first := prettyprint.New().Format(w)
		second := prettyprint.New().Format(w)
		assert.Equal(t, first, second)
	})
}
