package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/service"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/storage"
)

func PostSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.SessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		if _, err := app.ProfileRepo().GetProfile(c.Request.Context(), body.ProfileID); err != nil {
			HandleError(c, app.Logger(), err, 404, "Unknown profile")
			return
		}

		session, err := service.CreateSession(c.Request.Context(), app.SessionRepo(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save session")
			return
		}

		recomputeState(c, app, session.ProfileID)
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func GetSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.Query("profile_id")
		if profileID == "" {
			HandleError(c, app.Logger(), errors.New("profile_id query parameter is required"), 400, "Missing profile")
			return
		}

		sessions, err := app.SessionRepo().ListSessions(c.Request.Context(), profileID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions")
			return
		}

		HandleSuccess(c, app.Logger(), service.ActiveSessions(sessions), nil)
	}
}

func PatchSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.SessionUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSessionUpdateRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		session, err := service.UpdateSession(c.Request.Context(), app.SessionRepo(), c.Param("id"), &body)
		if err != nil {
			status := 500
			if errors.Is(err, storage.ErrNotFound) {
				status = 404
			}
			HandleError(c, app.Logger(), err, status, "Failed to update session")
			return
		}

		recomputeState(c, app, session.ProfileID)
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func DeleteSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		session, err := app.SessionRepo().GetSession(c.Request.Context(), id)
		if err != nil {
			status := 500
			if errors.Is(err, storage.ErrNotFound) {
				status = 404
			}
			HandleError(c, app.Logger(), err, status, "Failed to delete session")
			return
		}

		if err := service.DeleteSession(c.Request.Context(), app.SessionRepo(), id); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete session")
			return
		}

		recomputeState(c, app, session.ProfileID)
		c.Status(http.StatusNoContent)
	}
}

// recomputeState refreshes the persisted learner state after any session
// mutation. Failures are logged, never surfaced: the next read recomputes
// from the same history anyway.
func recomputeState(c *gin.Context, app App, profileID string) {
	ctx := c.Request.Context()
	now := time.Now()

	profile, err := app.ProfileRepo().GetProfile(ctx, profileID)
	if err != nil {
		app.Logger().Warnf("recompute: profile %s not found: %v", profileID, err)
		profile = nil
	}
	sessions, err := app.SessionRepo().ListSessions(ctx, profileID)
	if err != nil {
		app.Logger().Errorf("recompute: failed to list sessions for %s: %v", profileID, err)
		return
	}
	prior := loadPriorState(c, app, profileID)

	result := service.Recompute(sessions, profile, prior, now)
	if err := app.StateRepo().PutLearnerState(ctx, profileID, result.State); err != nil {
		app.Logger().Errorf("recompute: failed to persist learner state for %s: %v", profileID, err)
	}
}

func loadPriorState(c *gin.Context, app App, profileID string) *internal.LearnerState {
	prior, err := app.StateRepo().GetLearnerState(c.Request.Context(), profileID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			app.Logger().Warnf("failed to load learner state for %s: %v", profileID, err)
		}
		return nil
	}
	return prior
}
