package coach

import (
	"fmt"
	"math"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// bedtimeDriftRule compares the most recent bedtime against the average of
// the recent bedtime window and reports a sustained shift.
type bedtimeDriftRule struct{}

func (bedtimeDriftRule) evaluate(in ruleInput) *internal.CoachTip {
	var bedtimes []internal.SleepSession
	for _, s := range in.sessions {
		if !isBedtime(s) {
			continue
		}
		bedtimes = append(bedtimes, s)
		if len(bedtimes) == bedtimeWindow {
			break
		}
	}
	if len(bedtimes) < bedtimeMinCount {
		return nil
	}

	sum := 0.0
	for _, s := range bedtimes {
		sum += bedtimeOffset(s)
	}
	avg := sum / float64(len(bedtimes))
	drift := bedtimeOffset(bedtimes[0]) - avg
	if math.Abs(drift) <= driftThresholdMin {
		return nil
	}
	direction := "later"
	if drift < 0 {
		direction = "earlier"
	}
	return &internal.CoachTip{
		ID:       "tip-bedtime-drift",
		Title:    "Bedtime is drifting",
		Message:  fmt.Sprintf("Last night's bedtime was about %.0f minutes %s than the recent average. Keeping bedtime steady protects night sleep.", math.Abs(drift), direction),
		Severity: internal.TipInfo,

		RelatedSessionIDs: []string{bedtimes[0].ID},
	}
}

// bedtimeOffset maps a bedtime start to minutes since 18:00's midnight,
// carrying post-midnight starts past 1440 so 23:30 and 00:30 average sanely.
func bedtimeOffset(s internal.SleepSession) float64 {
	h := s.StartTime.Hour()
	m := float64(h*60 + s.StartTime.Minute())
	if h < 3 {
		m += 24 * 60
	}
	return m
}

// splitNightRule detects a recorded session fully nested inside one of the
// most recent night sleeps — a logged wake period mid-night. Only the first
// detection is reported.
type splitNightRule struct{}

func (splitNightRule) evaluate(in ruleInput) *internal.CoachTip {
	nights := 0
	for _, night := range in.sessions {
		if isNap(night) {
			continue
		}
		nights++
		if nights > nightWindowCount {
			break
		}
		for _, other := range in.sessions {
			if other.ID == night.ID {
				continue
			}
			if other.StartTime.After(night.StartTime) && other.EndTime.Before(*night.EndTime) {
				return &internal.CoachTip{
					ID:       "tip-split-night",
					Title:    "Split night detected",
					Message:  "A wake period was logged in the middle of a night sleep. Split nights often follow an over-long or too-early bedtime.",
					Severity: internal.TipWarning,

					RelatedSessionIDs: []string{night.ID, other.ID},
				}
			}
		}
	}
	return nil
}
