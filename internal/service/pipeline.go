package service

import (
	"time"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/coach"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/learner"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/schedule"
)

// PipelineResult is one consistent pass over a profile's history.
type PipelineResult struct {
	State  internal.LearnerState    `json:"learner_state"`
	Blocks []internal.ScheduleBlock `json:"schedule"`
	Tips   []internal.CoachTip      `json:"tips"`
}

// Recompute runs the full pipeline over a snapshot of the session list:
// learner first, then the simulator and tip engine independently off the
// same fresh state. Pure — the caller persists the returned state.
func Recompute(sessions []internal.SleepSession, profile *internal.BabyProfile, prior *internal.LearnerState, now time.Time) PipelineResult {
	ageMonths := defaultAgeMonths
	if profile != nil {
		ageMonths = profile.AgeMonths(now)
	}

	state := learner.Update(prior, sessions, ageMonths, now)
	last := LatestSession(sessions)

	return PipelineResult{
		State:  state,
		Blocks: schedule.Generate(state, last, profile, now),
		Tips:   coach.Evaluate(sessions, state, profile, now),
	}
}

const defaultAgeMonths = 6

// LatestSession picks the most recent non-deleted session, open or not. An
// open session matters here: it tells the simulator the child is asleep.
func LatestSession(sessions []internal.SleepSession) *internal.SleepSession {
	var last *internal.SleepSession
	for i := range sessions {
		s := &sessions[i]
		if s.Deleted {
			continue
		}
		if last == nil || s.StartTime.After(last.StartTime) {
			last = s
		}
	}
	return last
}
