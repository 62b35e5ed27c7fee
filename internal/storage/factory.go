package storage

import (
	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/config"
)

// Repositories bundles the concrete repository set selected by config.
type Repositories struct {
	Sessions SessionRepository
	Profiles ProfileRepository
	States   LearnerStateRepository

	closers []interface{ Close() error }
}

func (r *Repositories) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// New builds the repository set for the configured backend. A configured
// redis URL overrides the primary backend for learner states only.
func New(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	repos := &Repositories{}

	switch cfg.StorageBackend {
	case "postgres":
		pg, err := NewPostgresStorage(cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		repos.Sessions = pg
		repos.Profiles = pg
		repos.States = pg
		repos.closers = append(repos.closers, pg)
	default:
		fs, err := NewFileStorage(cfg.SessionsFile, cfg.ProfilesFile, cfg.StatesFile, logger)
		if err != nil {
			return nil, err
		}
		repos.Sessions = fs
		repos.Profiles = fs
		repos.States = fs
		repos.closers = append(repos.closers, fs)
	}

	if cfg.RedisURL != "" {
		rs, err := NewRedisStateStore(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		repos.States = rs
		repos.closers = append(repos.closers, rs)
	}

	return repos, nil
}
