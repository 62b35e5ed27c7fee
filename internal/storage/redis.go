package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// learnerStateTTL keeps cached states from outliving their session history
// by too long; the pipeline recomputes on every pass anyway.
const learnerStateTTL = 7 * 24 * time.Hour

// RedisStateStore caches the latest learner state per profile in redis.
type RedisStateStore struct {
	client *redis.Client
	logger internal.Logger
}

func NewRedisStateStore(url string, logger internal.Logger) (*RedisStateStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Errorf("invalid redis url: %v", err)
		return nil, err
	}
	return &RedisStateStore{client: redis.NewClient(opts), logger: logger}, nil
}

func (r *RedisStateStore) Close() error {
	return r.client.Close()
}

func stateKey(profileID string) string {
	return "learner_state:" + profileID
}

func (r *RedisStateStore) PutLearnerState(ctx context.Context, profileID string, state internal.LearnerState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, stateKey(profileID), payload, learnerStateTTL).Err(); err != nil {
		r.logger.Errorf("failed to cache learner state: %v", err)
		return err
	}
	return nil
}

func (r *RedisStateStore) GetLearnerState(ctx context.Context, profileID string) (*internal.LearnerState, error) {
	payload, err := r.client.Get(ctx, stateKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		r.logger.Errorf("failed to read learner state: %v", err)
		return nil, err
	}
	var state internal.LearnerState
	if err := json.Unmarshal(payload, &state); err != nil {
		r.logger.Errorf("corrupt learner state for profile %s: %v", profileID, err)
		return nil, ErrNotFound
	}
	return &state, nil
}

var _ LearnerStateRepository = (*RedisStateStore)(nil)
