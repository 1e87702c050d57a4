package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

func BadgeModule(trackers Trackers) api.Module {
	ctl := &trackerController{trackers: trackers}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/badges", ctl.getBadges)
		c.POST("/badges/seen", ctl.takeNewBadge)
	})
}

// GET /api/badges
func (c *trackerController) getBadges(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.BadgesResponse{Badges: t.Badges()}, nil
}

// POST /api/badges/seen returns the badge pending celebration and clears it.
func (c *trackerController) takeNewBadge(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	var resp packets.NewBadgeResponse
	if id, ok := t.TakeNewBadge(); ok {
		if def, ok := model.BadgeByID(id); ok {
			resp.Badge = &def
		}
	}
	return resp, nil
}
