package packets

import "github.com/Nixie-Tech-LLC/salah/internal/model"

// body for registering
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// body for editing the profile; omitted fields are left unchanged
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=30"`
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=200"`
}

// body for finishing onboarding
type OnboardingRequest struct {
	Username    string             `json:"username" binding:"required,min=3,max=30"`
	PrayerTimes []model.SlotConfig `json:"prayerTimes" binding:"required"`
}
