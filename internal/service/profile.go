package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/storage"
)

type ProfileRequest struct {
	Name      string    `json:"name" validate:"required"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
}

func ValidateProfileRequest(body *ProfileRequest) error {
	if err := validate.Struct(body); err != nil {
		return err
	}
	if body.BirthDate.After(time.Now()) {
		return errors.New("birth_date must not be in the future")
	}
	return nil
}

func CreateProfile(ctx context.Context, profileRepo storage.ProfileRepository, user *internal.User, body *ProfileRequest) (*internal.BabyProfile, error) {
	profile := &internal.BabyProfile{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      body.Name,
		BirthDate: body.BirthDate,
		CreatedAt: time.Now(),
	}
	if err := profileRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
