// Package coach evaluates a fixed battery of heuristic rules over the
// session history and emits advisory tips. Each rule is an independent
// variant with its own predicate and message; a single pass may surface
// several tips, and a session may contribute to more than one.
package coach

import (
	"sort"
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/baseline"
)

const (
	defaultAgeMonths = 6

	shortNapMin   = 30
	streakWindow  = 3
	streakTrigger = 2

	overtiredFactor = 1.2

	bedtimeWindow     = 7
	bedtimeMinCount   = 3
	driftThresholdMin = 30

	nightSleepMin    = 240
	nightWindowCount = 3

	highConfidence    = 0.75
	minUsableSessions = 5

	varianceWindow       = 10
	varianceThresholdMin = 30
)

// ruleInput is the shared view every rule evaluates against. Sessions are
// non-deleted, end-populated, and sorted newest first.
type ruleInput struct {
	sessions []internal.SleepSession
	state    internal.LearnerState
	bracket  baseline.Bracket
}

type rule interface {
	evaluate(in ruleInput) *internal.CoachTip
}

// The rule set is fixed and small; order here is presentation order.
var rules = []rule{
	shortNapStreakRule{},
	overtiredRule{},
	bedtimeDriftRule{},
	splitNightRule{},
	inconsistencyRule{},
	highConfidenceRule{},
	insufficientDataRule{},
}

// Evaluate runs every rule over the usable session history and returns the
// triggered tips. No usable sessions means no tips.
func Evaluate(sessions []internal.SleepSession, state internal.LearnerState, profile *internal.BabyProfile, now time.Time) []internal.CoachTip {
	usable := make([]internal.SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Deleted || s.EndTime == nil {
			continue
		}
		usable = append(usable, s)
	}
	if len(usable) == 0 {
		return nil
	}
	sort.Slice(usable, func(i, j int) bool {
		return usable[i].StartTime.After(usable[j].StartTime)
	})

	ageMonths := defaultAgeMonths
	if profile != nil {
		ageMonths = profile.AgeMonths(now)
	}
	in := ruleInput{
		sessions: usable,
		state:    state,
		bracket:  baseline.Lookup(ageMonths),
	}

	var tips []internal.CoachTip
	for _, r := range rules {
		if tip := r.evaluate(in); tip != nil {
			tips = append(tips, *tip)
		}
	}
	return tips
}

func isNap(s internal.SleepSession) bool {
	return s.DurationMinutes() < nightSleepMin
}

// isBedtime classifies a true night sleep: long enough to not be a nap and
// starting in the evening window (18:00 through 03:00). An evening catnap
// satisfies the clock check but is still a nap.
func isBedtime(s internal.SleepSession) bool {
	if isNap(s) {
		return false
	}
	h := s.StartTime.Hour()
	return h >= 18 || h < 3
}
