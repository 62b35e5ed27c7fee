// Package schedule projects the learner's estimate forward in time into a
// sequence of alternating wind-down and sleep blocks covering the rest of
// today and all of tomorrow.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/baseline"
)

const (
	defaultAgeMonths = 6

	// maxBlocks bounds pathological inputs; it is not a business rule.
	maxBlocks = 20

	bedtimeDurationMin = 660 // overnight duration is assumed, not learned
	bedtimePenalty     = -0.1

	napWindDownMin     = 15
	bedtimeWindDownMin = 20

	// A what-if tweak may shrink the wake estimate, never invert it.
	minWakeWindowMin = 30

	// The first wake window of a new day tends to run short.
	morningRewindMin = 15

	alignedToleranceMin = 15

	confidenceLo = 0.1
	confidenceHi = 1.0
)

// Generate simulates forward from the last known session and returns the
// upcoming blocks in chronological order. A nil last session starts the
// simulation at now; a nil profile assumes a six-month-old.
func Generate(state internal.LearnerState, last *internal.SleepSession, profile *internal.BabyProfile, now time.Time) []internal.ScheduleBlock {
	ageMonths := defaultAgeMonths
	if profile != nil {
		ageMonths = profile.AgeMonths(now)
	}
	b := baseline.Lookup(ageMonths)

	cur := resolveStart(state, last, now)

	// Everything through the end of tomorrow.
	year, month, day := now.Date()
	horizon := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 2)

	wake := time.Duration(state.WakeWindowMin) * time.Minute

	var blocks []internal.ScheduleBlock
	for len(blocks) < maxBlocks {
		sleepStart := cur.Add(wake)
		if !sleepStart.Before(horizon) {
			break
		}

		kind := internal.BlockNap
		if isBedtimeHour(sleepStart.Hour()) {
			kind = internal.BlockBedtime
		}

		var sleepMin int
		var penalty float64
		var rationale string
		var windDownMin int
		if kind == internal.BlockBedtime {
			sleepMin = bedtimeDurationMin
			penalty = bedtimePenalty
			windDownMin = bedtimeWindDownMin
			rationale = fmt.Sprintf("Bedtime after a %d min wake window.", state.WakeWindowMin)
		} else {
			sleepMin = baseline.Clamp(state.NapLengthMin, ageMonths, baseline.KindNapLength)
			windDownMin = napWindDownMin
			rationale = napRationale(state.WakeWindowMin, b.WakeWindowTypical)
		}

		conf := clampF(state.Confidence+penalty, confidenceLo, confidenceHi)
		sleepEnd := sleepStart.Add(time.Duration(sleepMin) * time.Minute)

		if sleepStart.After(now) {
			windStart := sleepStart.Add(-time.Duration(windDownMin) * time.Minute)
			blocks = append(blocks, internal.ScheduleBlock{
				ID:         blockID(internal.BlockWindDown, windStart),
				Kind:       internal.BlockWindDown,
				StartTime:  windStart,
				EndTime:    sleepStart,
				Confidence: conf,
				Rationale:  fmt.Sprintf("Wind-down before the %s.", kind),
			})
		}
		if sleepEnd.After(now) {
			blocks = append(blocks, internal.ScheduleBlock{
				ID:         blockID(kind, sleepStart),
				Kind:       kind,
				StartTime:  sleepStart,
				EndTime:    sleepEnd,
				Confidence: conf,
				Rationale:  rationale,
			})
		}

		next := sleepEnd
		if kind == internal.BlockBedtime {
			next = next.Add(-morningRewindMin * time.Minute)
		}
		// A non-positive wake estimate stalls or rewinds the clock; stop
		// rather than spin without ever reaching the horizon.
		if !next.After(cur) {
			break
		}
		cur = next
	}
	return blocks
}

// GenerateWhatIf re-runs the simulation with the wake-window estimate offset
// by adjustmentMinutes. Confidence drops proportionally to the size of the
// adjustment, floored so a large manual tweak never reads as zero.
func GenerateWhatIf(state internal.LearnerState, last *internal.SleepSession, profile *internal.BabyProfile, adjustmentMinutes int, now time.Time) []internal.ScheduleBlock {
	adjusted := state
	adjusted.WakeWindowMin += adjustmentMinutes
	if adjusted.WakeWindowMin < minWakeWindowMin {
		adjusted.WakeWindowMin = minWakeWindowMin
	}
	adjusted.Confidence = math.Max(state.Confidence-math.Abs(float64(adjustmentMinutes))/100, confidenceLo)
	return Generate(adjusted, last, profile, now)
}

// resolveStart picks the instant the simulation begins. An open session
// means the child is asleep now: project to its expected end using the nap
// estimate, never earlier than now.
func resolveStart(state internal.LearnerState, last *internal.SleepSession, now time.Time) time.Time {
	if last == nil {
		return now
	}
	if last.EndTime == nil {
		projected := last.StartTime.Add(time.Duration(state.NapLengthMin) * time.Minute)
		if projected.Before(now) {
			return now
		}
		return projected
	}
	if last.EndTime.After(now) {
		return *last.EndTime
	}
	return now
}

// isBedtimeHour is a fixed clock-hour heuristic, deliberately independent of
// the baseline table's naps-per-day figure.
func isBedtimeHour(h int) bool {
	return (h >= 19 && h <= 22) || h < 4
}

func napRationale(wakeMin, typicalMin int) string {
	diff := wakeMin - typicalMin
	switch {
	case diff > alignedToleranceMin:
		return fmt.Sprintf("Wake window of %d min adjusted above the %d min baseline for this age.", wakeMin, typicalMin)
	case diff < -alignedToleranceMin:
		return fmt.Sprintf("Wake window of %d min adjusted below the %d min baseline for this age.", wakeMin, typicalMin)
	default:
		return fmt.Sprintf("Wake window of %d min aligned with the %d min baseline for this age.", wakeMin, typicalMin)
	}
}

// blockID is derived from kind and start so repeated runs over identical
// inputs reproduce identical blocks.
func blockID(kind internal.BlockKind, start time.Time) string {
	return fmt.Sprintf("%s-%d", kind, start.Unix())
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
