package packets

import (
	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

type TokenResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

// ProfileResponse always carries a status; Profile is set only on success.
type ProfileResponse struct {
	Status  model.ProfileStatus `json:"status"`
	Email   string              `json:"email"`
	Profile *model.Profile      `json:"profile,omitempty"`
	Error   string              `json:"error,omitempty"`
}
