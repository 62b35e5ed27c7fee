// Package learner rebuilds the smoothed sleep-pattern estimate for a profile
// from its complete session history. The rebuild is intentionally a full
// recompute on every call: sessions can be edited or soft-deleted at any
// time, and a from-scratch pass stays correct without any delta bookkeeping.
package learner

import (
	"math"
	"sort"
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/baseline"
)

const (
	// SchemaVersion is stamped on states created with no prior history.
	SchemaVersion = 1

	// DefaultNapLengthMin and DefaultWakeWindowMin seed a state when no
	// usable session exists yet.
	DefaultNapLengthMin  = 60
	DefaultWakeWindowMin = 90

	alpha = 0.3 // EWMA weight for each new observation

	napCutoffMin = 240 // at or above this a session counts as night sleep

	napClampLo = 10
	napClampHi = 180

	wakeAcceptMax = 720 // gaps at or above this are discarded, not clamped
	wakeClampLo   = 30
	wakeClampHi   = 400

	confidenceFloor    = 0.3
	confidencePerPoint = 0.05
)

// Seed returns the cold-start state used when a profile has no history.
func Seed(now time.Time) internal.LearnerState {
	return internal.LearnerState{
		SchemaVersion:  SchemaVersion,
		NapLengthMin:   DefaultNapLengthMin,
		WakeWindowMin:  DefaultWakeWindowMin,
		Confidence:     confidenceFloor,
		LastComputedAt: now,
	}
}

// Update recomputes the learner state from the full session set. Sessions
// that are deleted or still open are excluded; if nothing usable remains the
// previous state is returned unchanged (or the seed defaults when there is
// no previous state). The function is pure: identical inputs produce
// identical output.
func Update(prev *internal.LearnerState, sessions []internal.SleepSession, ageMonths int, now time.Time) internal.LearnerState {
	usable := make([]internal.SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Deleted || s.EndTime == nil {
			continue
		}
		usable = append(usable, s)
	}
	if len(usable) == 0 {
		if prev != nil {
			return *prev
		}
		return Seed(now)
	}
	sort.Slice(usable, func(i, j int) bool {
		return usable[i].StartTime.Before(usable[j].StartTime)
	})

	// Population-reasonable starting points; replaced outright by the first
	// observation on a cold start so one early sample is not diluted by an
	// arbitrary midpoint.
	b := baseline.Lookup(ageMonths)
	napEst := float64(b.NapLengthMin+b.NapLengthMax) / 2
	wakeEst := float64(b.WakeWindowMin+b.WakeWindowMax) / 2

	coldStart := prev == nil
	napSeeded := false
	wakeSeeded := false
	accepted := 0

	for i, s := range usable {
		if dur := s.DurationMinutes(); dur < napCutoffMin {
			observed := clampF(dur, napClampLo, napClampHi)
			if coldStart && !napSeeded {
				napEst = observed
				napSeeded = true
			} else {
				napEst = alpha*observed + (1-alpha)*napEst
			}
			accepted++
		}
		if i == 0 {
			continue
		}
		gap := usable[i].StartTime.Sub(*usable[i-1].EndTime).Minutes()
		if gap <= 0 || gap >= wakeAcceptMax {
			continue
		}
		observed := clampF(gap, wakeClampLo, wakeClampHi)
		if coldStart && !wakeSeeded {
			wakeEst = observed
			wakeSeeded = true
		} else {
			wakeEst = alpha*observed + (1-alpha)*wakeEst
		}
		accepted++
	}

	version := SchemaVersion
	if prev != nil {
		version = prev.SchemaVersion
	}
	return internal.LearnerState{
		SchemaVersion:  version,
		NapLengthMin:   int(math.Round(napEst)),
		WakeWindowMin:  int(math.Round(wakeEst)),
		Confidence:     confidence(accepted),
		LastComputedAt: now,
	}
}

func confidence(accepted int) float64 {
	c := confidenceFloor + confidencePerPoint*float64(accepted)
	if c > 1.0 {
		return 1.0
	}
	return c
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
