package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// SettingsModule mounts prayer settings and the data reset.
func SettingsModule(trackers Trackers) api.Module {
	ctl := &trackerController{trackers: trackers}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.PUT("/settings", ctl.updateSettings)
		c.PUT("/settings/notifications", ctl.toggleNotifications)
		c.DELETE("/data", ctl.resetData)
	})
}

// GET /api/settings
func (c *trackerController) getSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return t.Settings(), nil
}

// PUT /api/settings
func (c *trackerController) updateSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var patch model.SettingsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	settings, err := t.UpdateSettings(ctx.Request.Context(), patch)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("settings update rejected")
		return nil, trackerError(err)
	}
	return settings, nil
}

// PUT /api/settings/notifications
func (c *trackerController) toggleNotifications(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.NotificationsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	settings, err := t.ToggleNotifications(ctx.Request.Context(), *request.Enabled)
	if err != nil {
		return nil, trackerError(err)
	}
	return settings, nil
}

// DELETE /api/data
func (c *trackerController) resetData(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	location, err := t.Reset(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("error resetting prayer data")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reset data"}
	}
	return packets.ResetResponse{Backup: location}, nil
}
