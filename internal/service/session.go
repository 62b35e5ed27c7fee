package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/storage"
)

var validate = validator.New()

type SessionRequest struct {
	ProfileID string     `json:"profile_id" validate:"required"`
	StartTime time.Time  `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time,omitempty" validate:"omitempty,gtfield=StartTime"`
	Quality   int        `json:"quality,omitempty" validate:"omitempty,gte=1,lte=5"`
	Note      string     `json:"note,omitempty" validate:"omitempty"`
	Source    string     `json:"source,omitempty" validate:"omitempty,oneof=manual timer"`
}

// SessionUpdateRequest carries a partial edit; nil fields are left alone.
type SessionUpdateRequest struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Quality   *int       `json:"quality,omitempty" validate:"omitempty,gte=1,lte=5"`
	Note      *string    `json:"note,omitempty"`
}

func ValidateSessionRequest(body *SessionRequest) error {
	return validate.Struct(body)
}

func ValidateSessionUpdateRequest(body *SessionUpdateRequest) error {
	return validate.Struct(body)
}

func CreateSession(ctx context.Context, sessionRepo storage.SessionRepository, body *SessionRequest) (*internal.SleepSession, error) {
	source := internal.SessionSource(body.Source)
	if source == "" {
		source = internal.SourceManual
	}
	session := &internal.SleepSession{
		ID:        uuid.NewString(),
		ProfileID: body.ProfileID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Quality:   body.Quality,
		Note:      body.Note,
		Source:    source,
		UpdatedAt: time.Now(),
	}
	if err := sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func UpdateSession(ctx context.Context, sessionRepo storage.SessionRepository, id string, body *SessionUpdateRequest) (*internal.SleepSession, error) {
	session, err := sessionRepo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if body.StartTime != nil {
		session.StartTime = *body.StartTime
	}
	if body.EndTime != nil {
		session.EndTime = body.EndTime
	}
	if body.Quality != nil {
		session.Quality = *body.Quality
	}
	if body.Note != nil {
		session.Note = *body.Note
	}
	session.UpdatedAt = time.Now()
	if err := sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(ctx context.Context, sessionRepo storage.SessionRepository, id string) error {
	return sessionRepo.SoftDeleteSession(ctx, id)
}

// ActiveSessions strips soft-deleted records; the pipeline and handlers
// only ever see the live set.
func ActiveSessions(sessions []internal.SleepSession) []internal.SleepSession {
	active := make([]internal.SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.Deleted {
			active = append(active, s)
		}
	}
	return active
}
