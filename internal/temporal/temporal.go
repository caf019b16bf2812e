// Package temporal provides the ISO-8601 date and duration primitives the
// rest of the unroller builds on: parsing, calendar-correct addition, and
// the handful of ordering predicates the configuration model and the
// builder need.
package temporal

import (
	"fmt"
	"strings"
	"time"

	duration "github.com/channelmeter/iso8601duration"
)

// Layout is the ISO-8601 date-time layout accepted throughout the
// configuration model.
const Layout = time.RFC3339

// Duration wraps an ISO-8601 period (e.g. "P2M", "P1DT12H"). A leading "-"
// (e.g. "-P2M", used by negative lags) is not part of the ISO-8601 grammar
// channelmeter/iso8601duration parses, so it is stripped and applied as a
// sign flip on every component instead.
type Duration struct {
	raw string
	d   *duration.Duration
}

// ParseDuration parses an ISO-8601 period string, optionally prefixed with
// "-" to denote a negative lag.
func ParseDuration(s string) (Duration, error) {
	negative := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	d, err := duration.FromString(body)
	if err != nil {
		return Duration{}, fmt.Errorf("temporal: invalid duration %q: %w", s, err)
	}
	if negative {
		d.Years, d.Months, d.Weeks, d.Days = -d.Years, -d.Months, -d.Weeks, -d.Days
		d.Hours, d.Minutes, d.Seconds = -d.Hours, -d.Minutes, -d.Seconds
	}
	return Duration{raw: s, d: d}, nil
}

// String returns the original ISO-8601 representation.
func (d Duration) String() string {
	return d.raw
}

// AddTo returns t shifted by the duration, applying calendar (year/month/day)
// components before clock (hour/minute/second) components.
func (d Duration) AddTo(t time.Time) time.Time {
	if d.d == nil {
		return t
	}
	days := d.d.Days + 7*d.d.Weeks
	t = t.AddDate(int(d.d.Years), int(d.d.Months), int(days))
	clock := time.Duration(d.d.Hours)*time.Hour +
		time.Duration(d.d.Minutes)*time.Minute +
		time.Duration(d.d.Seconds)*time.Second
	return t.Add(clock)
}

// LessEqualZero reports whether the duration is non-positive: every
// component is zero, or at least one component is negative.
func (d Duration) LessEqualZero() bool {
	if d.d == nil {
		return true
	}
	components := []float64{d.d.Years, d.d.Months, d.d.Weeks, d.d.Days, d.d.Hours, d.d.Minutes, d.d.Seconds}
	allZero := true
	for _, c := range components {
		if c < 0 {
			return true
		}
		if c != 0 {
			allZero = false
		}
	}
	return allZero
}

// ParseDate parses an ISO-8601 date-time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("temporal: invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseWalltime parses an "HH:MM:SS" walltime string.
func ParseWalltime(s string) (time.Time, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("temporal: invalid walltime %q: %w", s, err)
	}
	return t, nil
}
