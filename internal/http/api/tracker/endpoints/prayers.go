package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

const defaultHistoryDays = 30

// PrayerModule mounts today's prayers, marking, history and stats.
func PrayerModule(trackers Trackers) api.Module {
	ctl := &trackerController{trackers: trackers}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayers/today", ctl.getToday)
		c.POST("/prayers/:id/toggle", ctl.togglePrayer)
		c.POST("/prayers/refresh", ctl.refreshToday)
		c.GET("/history", ctl.getHistory)
		c.GET("/stats", ctl.getStats)
	})
}

func todayResponse(t *tracker.Tracker) packets.TodayResponse {
	return packets.TodayResponse{
		Date:     t.Today(),
		Prayers:  t.TodayPrayers(),
		Progress: t.TodayRatio(),
		Streak:   packets.NewStreakResponse(t.Streak()),
	}
}

// GET /api/prayers/today
func (c *trackerController) getToday(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return todayResponse(t), nil
}

// POST /api/prayers/:id/toggle
func (c *trackerController) togglePrayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	res, err := t.Mark(ctx.Request.Context(), model.SlotID(ctx.Param("id")))
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Str("slot", ctx.Param("id")).Str("phase", string(res.Phase)).Msg("prayer toggle failed")
		return nil, trackerError(err)
	}

	unlocked := make([]model.BadgeDefinition, 0, len(res.Unlocked))
	for _, id := range res.Unlocked {
		if def, ok := model.BadgeByID(id); ok {
			unlocked = append(unlocked, def)
		}
	}
	return packets.ToggleResponse{
		ID:       res.SlotID,
		Date:     res.Date,
		Previous: res.Previous,
		Status:   res.Status,
		Phase:    res.Phase,
		Streak:   packets.NewStreakResponse(res.Streak),
		Unlocked: unlocked,
	}, nil
}

// POST /api/prayers/refresh
func (c *trackerController) refreshToday(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := t.Refresh(ctx.Request.Context()); err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not refresh prayers"}
	}
	return todayResponse(t), nil
}

// GET /api/history?days=N
func (c *trackerController) getHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if query.Days == 0 {
		query.Days = defaultHistoryDays
	}

	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	h := t.History()
	dates := h.Dates()
	if len(dates) > query.Days {
		dates = dates[:query.Days]
	}

	days := make([]packets.DayResponse, 0, len(dates))
	for _, date := range dates {
		prayers := make([]model.Prayer, 0, model.SlotCount)
		for _, slot := range model.Slots {
			prayers = append(prayers, model.Prayer{ID: slot.ID, Name: slot.Name, Status: h.Status(date, slot.ID)})
		}
		days = append(days, packets.DayResponse{
			Date:      date,
			Prayers:   prayers,
			Completed: h.CompletedCount(date),
			FullDay:   h.IsFullDay(date),
		})
	}
	return packets.HistoryResponse{Days: days}, nil
}

// GET /api/stats
func (c *trackerController) getStats(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	t, apiErr := c.load(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.StatsResponse{
		Streak: packets.NewStreakResponse(t.Streak()),
		Today:  t.TodayRatio(),
		Weekly: t.WeeklyProgress(),
	}, nil
}
