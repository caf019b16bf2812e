package configmodel

import (
	"testing"
	"time"

	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := temporal.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestWorkflow_Validate(t *testing.T) {
	t.Run("Should reject a cycle whose start_date is after its end_date", func(t *testing.T) {
		start := date(t, "2025-02-01T00:00:00Z")
		end := date(t, "2025-01-01T00:00:00Z")
		w := &Workflow{
			Tasks: []TaskDecl{{Name: "T", Plugin: PluginShell}},
			Cycles: []CycleDecl{{
				Name: "C", StartDate: &start, EndDate: &end,
				Tasks: []CycleTaskRef{{TaskName: "T"}},
			}},
		}
		err := w.Validate()
		require.Error(t, err)
	})

	t.Run("Should reject a period given without any start_date", func(t *testing.T) {
		period, err := temporal.ParseDuration("P1D")
		require.NoError(t, err)
		w := &Workflow{
			Tasks: []TaskDecl{{Name: "T", Plugin: PluginShell}},
			Cycles: []CycleDecl{{
				Name: "C", Period: &period,
				Tasks: []CycleTaskRef{{TaskName: "T"}},
			}},
		}
		err = w.Validate()
		require.Error(t, err)
	})

	t.Run("Should reject a non-positive period", func(t *testing.T) {
		start := date(t, "2025-01-01T00:00:00Z")
		period, err := temporal.ParseDuration("P0D")
		require.NoError(t, err)
		w := &Workflow{
			Tasks: []TaskDecl{{Name: "T", Plugin: PluginShell}},
			Cycles: []CycleDecl{{
				Name: "C", StartDate: &start, EndDate: &start, Period: &period,
				Tasks: []CycleTaskRef{{TaskName: "T"}},
			}},
		}
		err = w.Validate()
		require.Error(t, err)
	})

	t.Run("Should reject a reference spec that sets both lag and date", func(t *testing.T) {
		lag, err := temporal.ParseDuration("P1D")
		require.NoError(t, err)
		start := date(t, "2025-01-01T00:00:00Z")
		w := &Workflow{
			Tasks: []TaskDecl{{Name: "T", Plugin: PluginShell}},
			Cycles: []CycleDecl{{
				Name: "C", StartDate: &start, EndDate: &start,
				Tasks: []CycleTaskRef{{
					TaskName: "T",
					Inputs:   []refspec.Spec{{Name: "D", Lag: []temporal.Duration{lag}, Date: []time.Time{start}}},
				}},
			}},
		}
		err = w.Validate()
		require.Error(t, err)
	})

	t.Run("Should accept a well-formed workflow", func(t *testing.T) {
		start := date(t, "2025-01-01T00:00:00Z")
		end := date(t, "2025-12-31T00:00:00Z")
		w := &Workflow{
			Parameters: map[string][]any{"member": {"a", "b"}},
			Tasks:      []TaskDecl{{Name: "T", Plugin: PluginShell, Parameters: []string{"member"}}},
			Data:       DataDecls{Available: []DataDecl{{Name: "A", Kind: "file"}}},
			Cycles: []CycleDecl{{
				Name: "C", StartDate: &start, EndDate: &end,
				Tasks: []CycleTaskRef{{TaskName: "T"}},
			}},
		}
		assert.NoError(t, w.Validate())
	})
}

func TestApplyRootDefaults(t *testing.T) {
	t.Run("Should merge ROOT defaults without overriding a sibling's explicit field", func(t *testing.T) {
		tasks := []TaskDecl{
			{Name: RootTaskName, Host: "default-host", Account: "default-account"},
			{Name: "T1", Host: "explicit-host"},
			{Name: "T2"},
		}
		out, err := ApplyRootDefaults(tasks)
		require.NoError(t, err)
		require.Len(t, out, 2)

		byName := map[string]TaskDecl{}
		for _, td := range out {
			byName[td.Name] = td
		}
		assert.Equal(t, "explicit-host", byName["T1"].Host)
		assert.Equal(t, "default-account", byName["T1"].Account)
		assert.Equal(t, "default-host", byName["T2"].Host)
	})

	t.Run("Should be a no-op without a ROOT task", func(t *testing.T) {
		tasks := []TaskDecl{{Name: "T1"}}
		out, err := ApplyRootDefaults(tasks)
		require.NoError(t, err)
		assert.Equal(t, tasks, out)
	})
}
