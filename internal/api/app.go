package api

import (
	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/storage"
)

type App interface {
	Logger() internal.Logger
	SessionRepo() storage.SessionRepository
	ProfileRepo() storage.ProfileRepository
	StateRepo() storage.LearnerStateRepository
}
