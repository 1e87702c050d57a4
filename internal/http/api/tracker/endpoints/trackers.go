package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

// Trackers hands out the loaded tracker of a user; *tracker.Registry satisfies it.
type Trackers interface {
	Get(ctx context.Context, userID uuid.UUID) (*tracker.Tracker, error)
}

type trackerController struct {
	trackers Trackers
}

func (c *trackerController) load(ctx *gin.Context, user *model.User) (*tracker.Tracker, *api.APIError) {
	t, err := c.trackers.Get(ctx.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("could not load prayer data")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load prayer data"}
	}
	return t, nil
}

// trackerError maps tracker errors onto HTTP responses.
func trackerError(err error) *api.APIError {
	var tooEarly *prayer.TooEarlyError
	var syncErr *tracker.SyncError
	switch {
	case errors.As(err, &tooEarly):
		return &api.APIError{Code: http.StatusUnprocessableEntity, Message: tooEarly.Error()}
	case errors.Is(err, tracker.ErrSlotNotConfigured), errors.Is(err, model.ErrInvalidSlot):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.As(err, &syncErr):
		return &api.APIError{Code: http.StatusBadGateway, Message: syncErr.Error()}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "something went wrong, please try again"}
	}
}
