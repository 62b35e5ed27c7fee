package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/service"
)

func PostProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.ProfileRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateProfileRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		profile, err := service.CreateProfile(c.Request.Context(), app.ProfileRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func GetProfiles(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profiles, err := app.ProfileRepo().ListProfiles(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch profiles")
			return
		}

		HandleSuccess(c, app.Logger(), profiles, nil)
	}
}
