package coach

import (
	"fmt"
	"math"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// shortNapStreakRule warns when at least two of the most recent three naps
// ran under the short-nap threshold.
type shortNapStreakRule struct{}

func (shortNapStreakRule) evaluate(in ruleInput) *internal.CoachTip {
	var short []string
	seen := 0
	for _, s := range in.sessions {
		if !isNap(s) {
			continue
		}
		if s.DurationMinutes() < shortNapMin {
			short = append(short, s.ID)
		}
		seen++
		if seen == streakWindow {
			break
		}
	}
	if len(short) < streakTrigger {
		return nil
	}
	return &internal.CoachTip{
		ID:       "tip-short-nap-streak",
		Title:    "Short naps piling up",
		Message:  fmt.Sprintf("%d of the last %d naps were under %d minutes. An earlier wind-down or a darker room can help naps consolidate.", len(short), seen, shortNapMin),
		Severity: internal.TipWarning,

		RelatedSessionIDs: short,
	}
}

// inconsistencyRule flags a wide spread in recent nap lengths while the
// learner is still below high confidence.
type inconsistencyRule struct{}

func (inconsistencyRule) evaluate(in ruleInput) *internal.CoachTip {
	if in.state.Confidence >= highConfidence || len(in.sessions) < minUsableSessions {
		return nil
	}
	var durations []float64
	for _, s := range in.sessions {
		if !isNap(s) {
			continue
		}
		durations = append(durations, s.DurationMinutes())
		if len(durations) == varianceWindow {
			break
		}
	}
	if len(durations) < 2 {
		return nil
	}
	mean := 0.0
	for _, d := range durations {
		mean += d
	}
	mean /= float64(len(durations))
	variance := 0.0
	for _, d := range durations {
		variance += (d - mean) * (d - mean)
	}
	stddev := math.Sqrt(variance / float64(len(durations)))
	if stddev <= varianceThresholdMin {
		return nil
	}
	return &internal.CoachTip{
		ID:       "tip-inconsistent-naps",
		Title:    "Nap lengths vary a lot",
		Message:  fmt.Sprintf("Recent naps average %.0f minutes with a spread of ±%.0f minutes. A steadier pre-nap routine usually narrows this.", mean, stddev),
		Severity: internal.TipInfo,
	}
}
