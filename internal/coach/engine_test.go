package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func sess(id string, start time.Time, durMin int) internal.SleepSession {
	end := start.Add(time.Duration(durMin) * time.Minute)
	return internal.SleepSession{ID: id, StartTime: start, EndTime: &end, Source: internal.SourceManual}
}

func sixMonthProfile(now time.Time) *internal.BabyProfile {
	return &internal.BabyProfile{ID: "p1", BirthDate: now.AddDate(0, 0, -183)}
}

func tipIDs(tips []internal.CoachTip) []string {
	ids := make([]string, 0, len(tips))
	for _, tp := range tips {
		ids = append(ids, tp.ID)
	}
	return ids
}

func TestNoUsableSessionsNoTips(t *testing.T) {
	now := day.Add(12 * time.Hour)
	deleted := sess("d1", day, 60)
	deleted.Deleted = true
	open := internal.SleepSession{ID: "open", StartTime: day.Add(time.Hour)}

	tips := Evaluate([]internal.SleepSession{deleted, open}, internal.LearnerState{}, sixMonthProfile(now), now)
	assert.Empty(t, tips)
}

func TestShortNapStreak(t *testing.T) {
	now := day.Add(18 * time.Hour)
	sessions := []internal.SleepSession{
		sess("n1", day.Add(9*time.Hour), 25),
		sess("n2", day.Add(12*time.Hour), 60),
		sess("n3", day.Add(15*time.Hour), 20),
	}
	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-short-nap-streak")
	for _, tp := range tips {
		if tp.ID == "tip-short-nap-streak" {
			assert.Equal(t, internal.TipWarning, tp.Severity)
			assert.ElementsMatch(t, []string{"n1", "n3"}, tp.RelatedSessionIDs)
		}
	}
}

func TestOvertiredWakeWindow(t *testing.T) {
	now := day.Add(20 * time.Hour)
	// age-6 wake max is 165; 1.2× = 198 minutes
	sessions := []internal.SleepSession{
		sess("s1", day.Add(9*time.Hour), 60),  // ends 10:00
		sess("s2", day.Add(14*time.Hour), 60), // 240 min awake
	}
	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-long-wake-window")
	for _, tp := range tips {
		if tp.ID == "tip-long-wake-window" {
			assert.ElementsMatch(t, []string{"s1", "s2"}, tp.RelatedSessionIDs)
		}
	}
}

func TestBedtimeDrift(t *testing.T) {
	now := day.Add(5 * 24 * time.Hour)
	var sessions []internal.SleepSession
	// four steady 19:30 bedtimes, then one at 21:00
	for i := 4; i >= 1; i-- {
		start := day.AddDate(0, 0, -i).Add(19*time.Hour + 30*time.Minute)
		sessions = append(sessions, sess("b"+string(rune('0'+i)), start, 600))
	}
	sessions = append(sessions, sess("recent", day.Add(21*time.Hour), 600))

	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-bedtime-drift")
	for _, tp := range tips {
		if tp.ID == "tip-bedtime-drift" {
			assert.Equal(t, internal.TipInfo, tp.Severity)
			assert.Contains(t, tp.Message, "later")
			assert.Equal(t, []string{"recent"}, tp.RelatedSessionIDs)
		}
	}
}

func TestEveningCatnapIsNotABedtime(t *testing.T) {
	now := day.Add(5 * 24 * time.Hour)
	var sessions []internal.SleepSession
	// four steady 19:30 bedtimes, then a 25-minute catnap at 18:30
	for i := 4; i >= 1; i-- {
		start := day.AddDate(0, 0, -i).Add(19*time.Hour + 30*time.Minute)
		sessions = append(sessions, sess("b"+string(rune('0'+i)), start, 600))
	}
	sessions = append(sessions, sess("catnap", day.Add(18*time.Hour+30*time.Minute), 25))

	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	assert.NotContains(t, tipIDs(tips), "tip-bedtime-drift")
}

func TestSplitNight(t *testing.T) {
	now := day.Add(36 * time.Hour)
	night := sess("night", day.Add(19*time.Hour), 660) // 19:00–06:00
	wake := sess("wake", day.Add(26*time.Hour), 45)    // 02:00–02:45, nested
	sessions := []internal.SleepSession{night, wake}

	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-split-night")
	for _, tp := range tips {
		if tp.ID == "tip-split-night" {
			assert.Equal(t, internal.TipWarning, tp.Severity)
			assert.ElementsMatch(t, []string{"night", "wake"}, tp.RelatedSessionIDs)
		}
	}
}

func TestInconsistencyFlagsHighVariance(t *testing.T) {
	now := day.Add(3 * 24 * time.Hour)
	durations := []int{20, 130, 25, 140, 30, 150}
	var sessions []internal.SleepSession
	for i, d := range durations {
		start := day.Add(time.Duration(8+3*i) * time.Hour)
		sessions = append(sessions, sess("v"+string(rune('0'+i)), start, d))
	}
	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.5}, sixMonthProfile(now), now)
	assert.Contains(t, tipIDs(tips), "tip-inconsistent-naps")
}

func TestHighConfidenceAndInsufficientDataAreExclusive(t *testing.T) {
	now := day.Add(48 * time.Hour)

	var many []internal.SleepSession
	for i := 0; i < 6; i++ {
		many = append(many, sess("m"+string(rune('0'+i)), day.Add(time.Duration(i)*3*time.Hour), 60))
	}
	few := many[:2]

	cases := []struct {
		name       string
		sessions   []internal.SleepSession
		confidence float64
	}{
		{"confident with history", many, 0.9},
		{"unconfident with history", many, 0.4},
		{"confident without history", few, 0.9},
		{"unconfident without history", few, 0.4},
	}
	for _, tc := range cases {
		tips := Evaluate(tc.sessions, internal.LearnerState{Confidence: tc.confidence}, sixMonthProfile(now), now)
		ids := tipIDs(tips)
		both := 0
		for _, id := range ids {
			if id == "tip-high-confidence" || id == "tip-insufficient-data" {
				both++
			}
		}
		assert.LessOrEqual(t, both, 1, tc.name)
	}
}

func TestHighConfidenceSuccessTip(t *testing.T) {
	now := day.Add(48 * time.Hour)
	var sessions []internal.SleepSession
	for i := 0; i < 6; i++ {
		sessions = append(sessions, sess("c"+string(rune('0'+i)), day.Add(time.Duration(i)*3*time.Hour), 60))
	}
	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.8}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-high-confidence")
	assert.NotContains(t, tipIDs(tips), "tip-insufficient-data")
}

func TestInsufficientDataTip(t *testing.T) {
	now := day.Add(12 * time.Hour)
	sessions := []internal.SleepSession{sess("s1", day.Add(9*time.Hour), 60)}
	tips := Evaluate(sessions, internal.LearnerState{Confidence: 0.35}, sixMonthProfile(now), now)
	require.Contains(t, tipIDs(tips), "tip-insufficient-data")
	for _, tp := range tips {
		if tp.ID == "tip-insufficient-data" {
			assert.Contains(t, tp.Message, "4 more")
		}
	}
}

func TestDeterminism(t *testing.T) {
	now := day.Add(24 * time.Hour)
	sessions := []internal.SleepSession{
		sess("s1", day.Add(9*time.Hour), 25),
		sess("s2", day.Add(12*time.Hour), 20),
		sess("s3", day.Add(19*time.Hour), 620),
	}
	state := internal.LearnerState{Confidence: 0.5}
	profile := sixMonthProfile(now)
	assert.Equal(t, Evaluate(sessions, state, profile, now), Evaluate(sessions, state, profile, now))
}
