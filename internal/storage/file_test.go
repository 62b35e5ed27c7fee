package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	fs, err := NewFileStorage(
		filepath.Join(dir, "sessions.json"),
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, "states.json"),
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })
	return fs
}

func testSession(id, profileID string, start time.Time, durMin int) *internal.SleepSession {
	end := start.Add(time.Duration(durMin) * time.Minute)
	return &internal.SleepSession{
		ID:        id,
		ProfileID: profileID,
		StartTime: start,
		EndTime:   &end,
		Source:    internal.SourceManual,
		UpdatedAt: time.Now(),
	}
}

func TestSaveAndListSessions(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, fs.SaveSession(ctx, testSession("s1", "p1", base, 60)))
	require.NoError(t, fs.SaveSession(ctx, testSession("s2", "p1", base.Add(3*time.Hour), 45)))
	require.NoError(t, fs.SaveSession(ctx, testSession("other", "p2", base, 30)))

	sessions, err := fs.ListSessions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// newest first
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, "s1", sessions[1].ID)
}

func TestUpdateSession(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, fs.SaveSession(ctx, testSession("s1", "p1", base, 60)))

	updated := testSession("s1", "p1", base.Add(time.Hour), 90)
	updated.Note = "edited"
	require.NoError(t, fs.UpdateSession(ctx, updated))

	got, err := fs.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Note)
	assert.Equal(t, base.Add(time.Hour), got.StartTime)

	assert.ErrorIs(t, fs.UpdateSession(ctx, testSession("missing", "p1", base, 60)), ErrNotFound)
}

func TestSoftDeleteKeepsRecord(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, fs.SaveSession(ctx, testSession("s1", "p1", base, 60)))
	require.NoError(t, fs.SoftDeleteSession(ctx, "s1"))

	got, err := fs.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	// still listed; filtering is the caller's concern
	sessions, err := fs.ListSessions(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	assert.ErrorIs(t, fs.SoftDeleteSession(ctx, "missing"), ErrNotFound)
}

func TestProfilesRoundTrip(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()

	p := &internal.BabyProfile{
		ID:        "p1",
		UserID:    "u1",
		Name:      "Test Baby",
		BirthDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
	}
	require.NoError(t, fs.SaveProfile(ctx, p))

	got, err := fs.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Test Baby", got.Name)

	profiles, err := fs.ListProfiles(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	_, err = fs.GetProfile(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLearnerStateRoundTrip(t *testing.T) {
	fs := newTestFileStorage(t)
	ctx := context.Background()

	_, err := fs.GetLearnerState(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	state := internal.LearnerState{
		SchemaVersion:  1,
		NapLengthMin:   72,
		WakeWindowMin:  130,
		Confidence:     0.55,
		LastComputedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, fs.PutLearnerState(ctx, "p1", state))

	got, err := fs.GetLearnerState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, state, *got)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	sessionsFile := filepath.Join(dir, "sessions.json")
	profilesFile := filepath.Join(dir, "profiles.json")
	statesFile := filepath.Join(dir, "states.json")

	fs, err := NewFileStorage(sessionsFile, profilesFile, statesFile, logger)
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, fs.SaveSession(ctx, testSession("s1", "p1", base, 60)))
	require.NoError(t, fs.Close())

	reopened, err := NewFileStorage(sessionsFile, profilesFile, statesFile, logger)
	require.NoError(t, err)
	defer reopened.Close()

	sessions, err := reopened.ListSessions(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
