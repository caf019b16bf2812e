package workflow_test

import (
	"errors"
	"testing"
	"time"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
	"github.com/C2SM/ethiopia/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := temporal.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustDuration(t *testing.T, s string) temporal.Duration {
	t.Helper()
	d, err := temporal.ParseDuration(s)
	require.NoError(t, err)
	return d
}

func TestBuild_ScalarPassThrough(t *testing.T) {
	t.Run("Should build one task with resolved input and output and no wait-on", func(t *testing.T) {
		start := mustDate(t, "2025-01-01T00:00:00Z")
		cfg := &configmodel.Workflow{
			Name: "scalar",
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

		ts := w.Tasks.Iterate()
		require.Len(t, ts, 1)
		task := ts[0]
		assert.Equal(t, start, task.Coordinate["date"])
		require.Len(t, task.Inputs, 1)
		assert.Equal(t, "A", task.Inputs[0].Name)
		require.Len(t, task.Outputs, 1)
		assert.Equal(t, "B", task.Outputs[0].Name)
		assert.Empty(t, task.WaitOn)
	})
}

func TestBuild_TwoStepPeriodic(t *testing.T) {
	t.Run("Should enumerate three instances and link wait-on only where the guard and lag resolve", func(t *testing.T) {
		start := mustDate(t, "2025-01-01T00:00:00Z")
		end := mustDate(t, "2025-07-01T00:00:00Z")
		period := mustDuration(t, "P2M")
		negLag := mustDuration(t, "-P2M")

		cfg := &configmodel.Workflow{
			Name: "periodic",
			Tasks: []configmodel.TaskDecl{
				{Name: "preproc", Plugin: configmodel.PluginShell, Command: "pre.sh"},
				{Name: "icon", Plugin: configmodel.PluginIcon},
			},
			Cycles: []configmodel.CycleDecl{{
				Name: "C1", StartDate: &start, EndDate: &end, Period: &period,
				Tasks: []configmodel.CycleTaskRef{
					{TaskName: "preproc"},
					{TaskName: "icon", WaitOn: []refspec.Spec{{
						Name: "preproc",
						Lag:  []temporal.Duration{negLag},
						When: &refspec.Guard{After: &start},
					}}},
				},
			}},
		}

		w, err := workflow.Build(cfg)
		require.NoError(t, err)

		iconArr, ok := w.Tasks.Array("icon")
		require.True(t, ok)
		require.Equal(t, 3, iconArr.Len())

		d01 := mustDate(t, "2025-01-01T00:00:00Z")
		d03 := mustDate(t, "2025-03-01T00:00:00Z")

		icon01, err := iconArr.Get(map[string]any{"date": d01})
		require.NoError(t, err)
		assert.Empty(t, icon01.WaitOn, "guard after=start should fail to be satisfied at the start instance itself")

		icon03, err := iconArr.Get(map[string]any{"date": d03})
		require.NoError(t, err)
		require.Len(t, icon03.WaitOn, 1)
		assert.Equal(t, d01, icon03.WaitOn[0].Coordinate["date"])
	})
}

func TestBuild_ParameterBroadcast(t *testing.T) {
	t.Run("Should broadcast across every declared parameter value in order", func(t *testing.T) {
		start := mustDate(t, "2025-01-01T00:00:00Z")
		cfg := &configmodel.Workflow{
			Name:       "broadcast",
			Parameters: map[string][]any{"member": {"a", "b", "c"}},
			Tasks: []configmodel.TaskDecl{
				{Name: "T", Plugin: configmodel.PluginShell},
			},
			Data: configmodel.DataDecls{
				Available: []configmodel.DataDecl{{Name: "D", Kind: "file", Parameters: []string{"member"}}},
			},
			Cycles: []configmodel.CycleDecl{{
				Name: "C1", StartDate: &start, EndDate: &start,
				Tasks: []configmodel.CycleTaskRef{{
					TaskName: "T",
					Inputs: []refspec.Spec{{
						Name:       "D",
						Parameters: map[string]refspec.Selector{"member": refspec.All},
					}},
				}},
			}},
		}

		w, err := workflow.Build(cfg)
		require.NoError(t, err)

		ts := w.Tasks.Iterate()
		require.Len(t, ts, 1)
		require.Len(t, ts[0].Inputs, 3)
		assert.Equal(t, []any{"a", "b", "c"}, []any{
			ts[0].Inputs[0].Coordinate["member"],
			ts[0].Inputs[1].Coordinate["member"],
			ts[0].Inputs[2].Coordinate["member"],
		})
	})
}

func TestBuild_ParameterSingle(t *testing.T) {
	t.Run("Should restrict each parameterized task instance to its own member value", func(t *testing.T) {
		start := mustDate(t, "2025-01-01T00:00:00Z")
		cfg := &configmodel.Workflow{
			Name:       "single",
			Parameters: map[string][]any{"member": {"a", "b", "c"}},
			Tasks: []configmodel.TaskDecl{
				{Name: "T", Plugin: configmodel.PluginShell, Parameters: []string{"member"}},
			},
			Data: configmodel.DataDecls{
				Available: []configmodel.DataDecl{{Name: "D", Kind: "file", Parameters: []string{"member"}}},
			},
			Cycles: []configmodel.CycleDecl{{
				Name: "C1", StartDate: &start, EndDate: &start,
				Tasks: []configmodel.CycleTaskRef{{
					TaskName: "T",
					Inputs: []refspec.Spec{{
						Name:       "D",
						Parameters: map[string]refspec.Selector{"member": refspec.Single},
					}},
				}},
			}},
		}

		w, err := workflow.Build(cfg)
		require.NoError(t, err)

		ts := w.Tasks.Iterate()
		require.Len(t, ts, 3)
		for _, task := range ts {
			require.Len(t, task.Inputs, 1)
			assert.Equal(t, task.Coordinate["member"], task.Inputs[0].Coordinate["member"])
		}
	})
}

func TestBuild_DuplicateCoordinateRejected(t *testing.T) {
	t.Run("Should raise DuplicateKey when two available-data declarations collide", func(t *testing.T) {
		cfg := &configmodel.Workflow{
			Name: "dup",
			Tasks: []configmodel.TaskDecl{
				{Name: "T", Plugin: configmodel.PluginShell},
			},
			Data: configmodel.DataDecls{
				Available: []configmodel.DataDecl{
					{Name: "A", Kind: "file"},
					{Name: "A", Kind: "file"},
				},
			},
		}

		_, err := workflow.Build(cfg)
		require.Error(t, err)
		var dup *graph.DuplicateKeyError
		require.ErrorAs(t, err, &dup)
	})
}

func TestBuild_DateDimMisuse(t *testing.T) {
	t.Run("Should raise DateDimMissing when a lag targets a dateless dimensioned array", func(t *testing.T) {
		start := mustDate(t, "2025-01-01T00:00:00Z")
		oneDay := mustDuration(t, "P1D")
		cfg := &configmodel.Workflow{
			Name:       "misuse",
			Parameters: map[string][]any{"member": {"x", "y"}},
			Tasks: []configmodel.TaskDecl{
				{Name: "T", Plugin: configmodel.PluginShell},
			},
			Data: configmodel.DataDecls{
				Available: []configmodel.DataDecl{{Name: "A", Kind: "file", Parameters: []string{"member"}}},
			},
			Cycles: []configmodel.CycleDecl{{
				Name: "C1", StartDate: &start, EndDate: &start,
				Tasks: []configmodel.CycleTaskRef{{
					TaskName: "T",
					Inputs:   []refspec.Spec{{Name: "A", Lag: []temporal.Duration{oneDay}}},
				}},
			}},
		}

		_, err := workflow.Build(cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, graph.ErrDateDimMissing))
	})
}
