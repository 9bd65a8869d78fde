// Package window resolves the time windows used by extraction actions. All
// windows are inclusive on both ends and computed relative to a caller-supplied
// "now" so that several actions can share one reference instant.
package window

import (
	"fmt"
	"time"
)

type Policy string

const (
	PolicyYesterday Policy = "yesterday"
	PolicyLookback  Policy = "lookback"
	PolicyWeekend   Policy = "weekend"
)

// Window is the inclusive range [Start, End]. HoursBack carries the resolved
// lookback value for PolicyLookback windows so callers never need a side
// channel to learn what was applied.
type Window struct {
	Start     time.Time
	End       time.Time
	Policy    Policy
	HoursBack int
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Yesterday covers the previous calendar day in now's zone: local midnight
// minus one day through one second before local midnight.
func Yesterday(now time.Time) Window {
	midnight := floorToMidnight(now)
	return Window{
		Start:  midnight.AddDate(0, 0, -1),
		End:    midnight.Add(-time.Second),
		Policy: PolicyYesterday,
	}
}

// Lookback covers the last hours h up to and including now.
func Lookback(now time.Time, hours int) Window {
	return Window{
		Start:     now.Add(-time.Duration(hours) * time.Hour),
		End:       now,
		Policy:    PolicyLookback,
		HoursBack: hours,
	}
}

// Weekend walks now's calendar date backward until it lands on a Friday; the
// window runs from that Friday's local midnight through Sunday 23:59:59. When
// now is already a Friday the window starts the same day.
func Weekend(now time.Time) Window {
	day := floorToMidnight(now)
	for day.Weekday() != time.Friday {
		day = day.AddDate(0, 0, -1)
	}
	return Window{
		Start:  day,
		End:    day.AddDate(0, 0, 3).Add(-time.Second),
		Policy: PolicyWeekend,
	}
}

// Resolve computes the window for a policy, falling back to a lookback of
// defaultHours when the policy is PolicyLookback and hours is not positive.
// Policies outside the three known ones are rejected, never coerced.
func Resolve(policy Policy, now time.Time, hours, defaultHours int) (Window, error) {
	switch policy {
	case PolicyYesterday:
		return Yesterday(now), nil
	case PolicyWeekend:
		return Weekend(now), nil
	case PolicyLookback:
		if hours <= 0 {
			hours = defaultHours
		}
		return Lookback(now, hours), nil
	default:
		return Window{}, fmt.Errorf("unknown window policy %q", policy)
	}
}

func floorToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
