package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/notify"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/schedule"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/service"
)

// pipelineInput gathers the consistent snapshot a pipeline pass runs on.
type pipelineInput struct {
	profile  *internal.BabyProfile
	sessions []internal.SleepSession
	prior    *internal.LearnerState
	now      time.Time
}

// loadPipelineInput resolves the profile and session snapshot from the
// request, or writes an error response and returns false.
func loadPipelineInput(c *gin.Context, app App) (pipelineInput, bool) {
	profileID := c.Query("profile_id")
	if profileID == "" {
		HandleError(c, app.Logger(), errors.New("profile_id query parameter is required"), 400, "Missing profile")
		return pipelineInput{}, false
	}

	profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), profileID)
	if err != nil {
		HandleError(c, app.Logger(), err, 404, "Unknown profile")
		return pipelineInput{}, false
	}

	sessions, err := app.SessionRepo().ListSessions(c.Request.Context(), profileID)
	if err != nil {
		HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions")
		return pipelineInput{}, false
	}

	return pipelineInput{
		profile:  profile,
		sessions: sessions,
		prior:    loadPriorState(c, app, profileID),
		now:      time.Now(),
	}, true
}

// runPipeline executes a full pass and persists the fresh learner state.
func runPipeline(c *gin.Context, app App, in pipelineInput) service.PipelineResult {
	result := service.Recompute(in.sessions, in.profile, in.prior, in.now)
	if err := app.StateRepo().PutLearnerState(c.Request.Context(), in.profile.ID, result.State); err != nil {
		app.Logger().Errorf("failed to persist learner state for %s: %v", in.profile.ID, err)
	}
	return result
}

func GetSchedule(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := loadPipelineInput(c, app)
		if !ok {
			return
		}
		result := runPipeline(c, app, in)
		meta := map[string]any{"confidence": result.State.Confidence}
		HandleSuccess(c, app.Logger(), result.Blocks, meta)
	}
}

func GetScheduleWhatIf(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		adjustment, err := strconv.Atoi(c.DefaultQuery("adjustment", "0"))
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid adjustment")
			return
		}

		in, ok := loadPipelineInput(c, app)
		if !ok {
			return
		}
		result := runPipeline(c, app, in)

		last := service.LatestSession(in.sessions)
		blocks := schedule.GenerateWhatIf(result.State, last, in.profile, adjustment, in.now)
		meta := map[string]any{"adjustment_minutes": adjustment}
		HandleSuccess(c, app.Logger(), blocks, meta)
	}
}

func GetTips(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := loadPipelineInput(c, app)
		if !ok {
			return
		}
		result := runPipeline(c, app, in)
		HandleSuccess(c, app.Logger(), result.Tips, nil)
	}
}

func GetLearnerState(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := loadPipelineInput(c, app)
		if !ok {
			return
		}
		result := runPipeline(c, app, in)
		HandleSuccess(c, app.Logger(), result.State, nil)
	}
}

func GetScheduleNotifications(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := loadPipelineInput(c, app)
		if !ok {
			return
		}
		result := runPipeline(c, app, in)
		HandleSuccess(c, app.Logger(), notify.Plan(result.Blocks, in.now), nil)
	}
}
