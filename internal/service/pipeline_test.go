package service

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

func profile(now time.Time) *internal.BabyProfile {
	return &internal.BabyProfile{ID: "p1", Name: "Test Baby", BirthDate: now.AddDate(0, 0, -183)}
}

func TestRecomputeColdStart(t *testing.T) {
	now := day.Add(15 * time.Hour)
	sessions := []internal.SleepSession{
		sess("s1", day.Add(10*time.Hour), 60),
		sess("s2", day.Add(13*time.Hour), 60),
	}

	result := Recompute(sessions, profile(now), nil, now)

	assert.Equal(t, 60, result.State.NapLengthMin)
	assert.Equal(t, 120, result.State.WakeWindowMin)
	assert.NotEmpty(t, result.Blocks)

	ids := make([]string, 0, len(result.Tips))
	for _, tp := range result.Tips {
		ids = append(ids, tp.ID)
	}
	assert.Contains(t, ids, "tip-insufficient-data")
	assert.NotContains(t, ids, "tip-high-confidence")
}

func TestRecomputeDeletedSessionsInvisible(t *testing.T) {
	now := day.Add(15 * time.Hour)
	deleted := sess("gone", day.Add(10*time.Hour), 20)
	deleted.Deleted = true

	withDeleted := Recompute([]internal.SleepSession{deleted, sess("s1", day.Add(12*time.Hour), 60)}, profile(now), nil, now)
	without := Recompute([]internal.SleepSession{sess("s1", day.Add(12*time.Hour), 60)}, profile(now), nil, now)

	assert.Equal(t, without.State, withDeleted.State)
	assert.Equal(t, without.Tips, withDeleted.Tips)
}

func TestRecomputeOpenSessionDrivesSimulatorOnly(t *testing.T) {
	now := day.Add(14 * time.Hour)
	open := internal.SleepSession{ID: "open", StartTime: day.Add(13*time.Hour + 30*time.Minute)}
	sessions := []internal.SleepSession{
		sess("s1", day.Add(9*time.Hour), 60),
		open,
	}

	result := Recompute(sessions, profile(now), nil, now)

	// the open session is excluded from learning but anchors the schedule
	assert.Equal(t, 60, result.State.NapLengthMin)
	require.NotEmpty(t, result.Blocks)
	assert.True(t, result.Blocks[0].StartTime.After(open.StartTime))
}

func TestRecomputeNoSessions(t *testing.T) {
	now := day.Add(9 * time.Hour)
	result := Recompute(nil, profile(now), nil, now)

	assert.Equal(t, 60, result.State.NapLengthMin)
	assert.Equal(t, 90, result.State.WakeWindowMin)
	assert.NotEmpty(t, result.Blocks, "baseline-seeded schedule even without history")
	assert.Empty(t, result.Tips)
}

func TestRecomputeDeterminism(t *testing.T) {
	now := day.Add(20 * time.Hour)
	sessions := []internal.SleepSession{
		sess("s1", day.Add(9*time.Hour), 45),
		sess("s2", day.Add(12*time.Hour), 25),
		sess("s3", day.Add(19*time.Hour), 640),
	}
	p := profile(now)
	assert.Equal(t, Recompute(sessions, p, nil, now), Recompute(sessions, p, nil, now))
}

func TestValidateSessionRequest(t *testing.T) {
	start := day.Add(10 * time.Hour)
	endBefore := start.Add(-time.Hour)

	assert.Error(t, ValidateSessionRequest(&SessionRequest{ProfileID: "p1", StartTime: start, EndTime: &endBefore}))
	assert.Error(t, ValidateSessionRequest(&SessionRequest{StartTime: start}))
	assert.Error(t, ValidateSessionRequest(&SessionRequest{ProfileID: "p1", StartTime: start, Quality: 9}))

	endAfter := start.Add(time.Hour)
	assert.NoError(t, ValidateSessionRequest(&SessionRequest{ProfileID: "p1", StartTime: start, EndTime: &endAfter, Quality: 4}))
	// open session: no end yet
	assert.NoError(t, ValidateSessionRequest(&SessionRequest{ProfileID: "p1", StartTime: start, Source: "timer"}))
}

func TestValidateProfileRequest(t *testing.T) {
	assert.Error(t, ValidateProfileRequest(&ProfileRequest{Name: "Future Kid", BirthDate: time.Now().AddDate(0, 1, 0)}))
	assert.Error(t, ValidateProfileRequest(&ProfileRequest{BirthDate: time.Now().AddDate(0, -6, 0)}))
	assert.NoError(t, ValidateProfileRequest(&ProfileRequest{Name: "Baby", BirthDate: time.Now().AddDate(0, -6, 0)}))
}

func TestLatestSession(t *testing.T) {
	deleted := sess("del", day.Add(20*time.Hour), 60)
	deleted.Deleted = true
	open := internal.SleepSession{ID: "open", StartTime: day.Add(15 * time.Hour)}
	sessions := []internal.SleepSession{sess("s1", day.Add(9*time.Hour), 60), open, deleted}

	last := LatestSession(sessions)
	require.NotNil(t, last)
	assert.Equal(t, "open", last.ID)

	assert.Nil(t, LatestSession(nil))
}

func TestActiveSessions(t *testing.T) {
	deleted := sess("d", day, 60)
	deleted.Deleted = true
	active := ActiveSessions([]internal.SleepSession{deleted, sess("a", day.Add(2*time.Hour), 60)})
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].ID)
}
