package storage

import (
	"context"
	"errors"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// SessionRepository persists sleep sessions. Removal is a soft delete: the
// record stays on file with Deleted set, so the pipeline's full recompute
// simply stops seeing it.
type SessionRepository interface {
	SaveSession(ctx context.Context, s *internal.SleepSession) error
	UpdateSession(ctx context.Context, s *internal.SleepSession) error
	SoftDeleteSession(ctx context.Context, id string) error
	GetSession(ctx context.Context, id string) (*internal.SleepSession, error)
	ListSessions(ctx context.Context, profileID string) ([]internal.SleepSession, error)
}

// ProfileRepository persists baby profiles.
type ProfileRepository interface {
	SaveProfile(ctx context.Context, p *internal.BabyProfile) error
	GetProfile(ctx context.Context, id string) (*internal.BabyProfile, error)
	ListProfiles(ctx context.Context, userID string) ([]internal.BabyProfile, error)
}

// LearnerStateRepository persists the most recently computed learner state
// per profile. The core never touches this itself; the service layer stores
// each recompute result here.
type LearnerStateRepository interface {
	PutLearnerState(ctx context.Context, profileID string, state internal.LearnerState) error
	GetLearnerState(ctx context.Context, profileID string) (*internal.LearnerState, error)
}

// AuthProvider validates caregiver tokens.
type AuthProvider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
