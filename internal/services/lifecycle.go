package services

import (
	"math"
	"time"
)

// Lifecycle labels derived from the clock. Never stored: "now" moves on its
// own, so the label is recomputed on every read.
const (
	LifecycleUpcoming = "upcoming"
	LifecycleOngoing  = "ongoing"
	LifecycleFinished = "finished"
)

// DeriveLifecycle classifies now against the half-open interval
// [start, start+duration). A booking is ongoing from the first instant of its
// slot and finished from the first instant after it. Non-positive or
// non-finite durations fall back to one hour, matching legacy rows that
// predate duration validation.
func DeriveLifecycle(now, start time.Time, durationHours float64) string {
	if durationHours <= 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		durationHours = 1
	}
	end := start.Add(time.Duration(durationHours * float64(time.Hour)))

	switch {
	case now.Before(start):
		return LifecycleUpcoming
	case now.Before(end):
		return LifecycleOngoing
	default:
		return LifecycleFinished
	}
}
