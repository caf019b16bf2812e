package workflow

import (
	"time"

	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/temporal"
)

// cycleWindow resolves a cycle's effective start/end, falling back to the
// workflow-level dates when the cycle doesn't declare its own (spec.md §3,
// grounded on original_source's ConfigWorkflow._to_core_cycle).
func cycleWindow(cfg *configmodel.Workflow, cycle *configmodel.CycleDecl) (start, end time.Time, period *temporal.Duration) {
	s := cycle.StartDate
	if s == nil {
		s = cfg.StartDate
	}
	e := cycle.EndDate
	if e == nil {
		e = cfg.EndDate
	}
	return *s, *e, cycle.Period
}

// cycleDates yields start, then repeatedly advances by period while the next
// date remains strictly inside [start, end) — the strict `<` boundary rule
// spec.md §4.6/§9 freezes: a lag landing exactly on end_date is excluded, one
// landing exactly on start_date is included.
func cycleDates(start, end time.Time, period *temporal.Duration) []time.Time {
	dates := []time.Time{start}
	if period == nil {
		return dates
	}
	current := start
	for {
		next := period.AddTo(current)
		if !next.Before(end) {
			break
		}
		dates = append(dates, next)
		current = next
	}
	return dates
}
