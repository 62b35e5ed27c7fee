package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- SessionRepository ---

func (p *PostgresStorage) SaveSession(ctx context.Context, s *internal.SleepSession) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_sessions (id, profile_id, start_time, end_time, quality, note, source, deleted, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.ProfileID, s.StartTime, s.EndTime, s.Quality, s.Note, s.Source, s.Deleted, s.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep session: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateSession(ctx context.Context, s *internal.SleepSession) error {
	tag, err := p.pool.Exec(ctx, `UPDATE sleep_sessions SET start_time = $2, end_time = $3, quality = $4, note = $5, source = $6, deleted = $7, updated_at = $8 WHERE id = $1`,
		s.ID, s.StartTime, s.EndTime, s.Quality, s.Note, s.Source, s.Deleted, s.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update sleep session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) SoftDeleteSession(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE sleep_sessions SET deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to soft-delete sleep session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) GetSession(ctx context.Context, id string) (*internal.SleepSession, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, profile_id, start_time, end_time, quality, note, source, deleted, updated_at FROM sleep_sessions WHERE id = $1`, id)
	var s internal.SleepSession
	if err := row.Scan(&s.ID, &s.ProfileID, &s.StartTime, &s.EndTime, &s.Quality, &s.Note, &s.Source, &s.Deleted, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan sleep session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStorage) ListSessions(ctx context.Context, profileID string) ([]internal.SleepSession, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, profile_id, start_time, end_time, quality, note, source, deleted, updated_at FROM sleep_sessions WHERE profile_id = $1 ORDER BY start_time DESC`, profileID)
	if err != nil {
		p.logger.Errorf("failed to query sleep sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []internal.SleepSession
	for rows.Next() {
		var s internal.SleepSession
		err := rows.Scan(&s.ID, &s.ProfileID, &s.StartTime, &s.EndTime, &s.Quality, &s.Note, &s.Source, &s.Deleted, &s.UpdatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan sleep session: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// --- ProfileRepository ---

func (p *PostgresStorage) SaveProfile(ctx context.Context, profile *internal.BabyProfile) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO baby_profiles (id, user_id, name, birth_date, created_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, birth_date = EXCLUDED.birth_date`,
		profile.ID, profile.UserID, profile.Name, profile.BirthDate, profile.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert profile: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetProfile(ctx context.Context, id string) (*internal.BabyProfile, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, name, birth_date, created_at FROM baby_profiles WHERE id = $1`, id)
	var profile internal.BabyProfile
	if err := row.Scan(&profile.ID, &profile.UserID, &profile.Name, &profile.BirthDate, &profile.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan profile: %v", err)
		return nil, err
	}
	return &profile, nil
}

func (p *PostgresStorage) ListProfiles(ctx context.Context, userID string) ([]internal.BabyProfile, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, name, birth_date, created_at FROM baby_profiles WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		p.logger.Errorf("failed to query profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []internal.BabyProfile
	for rows.Next() {
		var profile internal.BabyProfile
		if err := rows.Scan(&profile.ID, &profile.UserID, &profile.Name, &profile.BirthDate, &profile.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan profile: %v", err)
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// --- LearnerStateRepository ---

func (p *PostgresStorage) PutLearnerState(ctx context.Context, profileID string, state internal.LearnerState) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO learner_states (profile_id, schema_version, nap_length_min, wake_window_min, confidence, last_computed_at) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id) DO UPDATE SET schema_version = EXCLUDED.schema_version, nap_length_min = EXCLUDED.nap_length_min, wake_window_min = EXCLUDED.wake_window_min, confidence = EXCLUDED.confidence, last_computed_at = EXCLUDED.last_computed_at`,
		profileID, state.SchemaVersion, state.NapLengthMin, state.WakeWindowMin, state.Confidence, state.LastComputedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert learner state: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetLearnerState(ctx context.Context, profileID string) (*internal.LearnerState, error) {
	row := p.pool.QueryRow(ctx, `SELECT schema_version, nap_length_min, wake_window_min, confidence, last_computed_at FROM learner_states WHERE profile_id = $1`, profileID)
	var state internal.LearnerState
	if err := row.Scan(&state.SchemaVersion, &state.NapLengthMin, &state.WakeWindowMin, &state.Confidence, &state.LastComputedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan learner state: %v", err)
		return nil, err
	}
	return &state, nil
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan user: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ SessionRepository = (*PostgresStorage)(nil)
var _ ProfileRepository = (*PostgresStorage)(nil)
var _ LearnerStateRepository = (*PostgresStorage)(nil)
