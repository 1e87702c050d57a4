package endpoints

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/db"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/salah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// AccountStore is the slice of db.Store the auth endpoints need.
type AccountStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, u model.ProfileUpdate) error
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, username string, settings model.Settings) error
}

// SettingsListener is told when a user's stored prayer settings changed
// outside the tracker; *tracker.Registry satisfies it.
type SettingsListener interface {
	Resync(ctx context.Context, userID uuid.UUID)
}

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store AccountStore) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required).
// settings may be nil.
func AuthSessionModule(jwtSecret string, store AccountStore, settings SettingsListener) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	ctl.settings = settings
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/profile", ctl.getProfile)
		c.PUT("/auth/profile", ctl.updateProfile)
		c.POST("/auth/onboarding", ctl.completeOnboarding)
	})
}

type AccountManager struct {
	jwtSecret string
	store     AccountStore
	settings  SettingsListener
}

func newAccountManager(secret string, store AccountStore) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

// POST /api/auth/signup
func (a *AccountManager) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if existing, _ := a.store.GetUserByEmail(ctx.Request.Context(), request.Email); existing != nil {
		log.Warn().Str("email", request.Email).Msg("signup email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	userID, err := a.store.CreateUser(ctx.Request.Context(), request.Email, hashed)
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not create user")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token, UserID: userID}, nil
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(ctx.Request.Context(), request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateJWT(foundUser.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token, UserID: foundUser.ID}, nil
}

// GET /api/auth/profile
//
// A missing profile or a row-policy failure is reported in the body, not as
// an HTTP error, so the client can offer retry or sign-out.
func (a *AccountManager) getProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, err := a.store.GetProfile(ctx.Request.Context(), user.ID)
	resp := packets.ProfileResponse{
		Status: db.ClassifyProfileError(err),
		Email:  user.Email,
	}

	switch resp.Status {
	case model.ProfileSuccess:
		resp.Profile = profile
	case model.ProfileMissing:
		resp.Error = "Profile not found"
	case model.ProfilePolicyError:
		resp.Error = "Database configuration error. Please contact support."
	default:
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("error fetching profile")
		resp.Error = "Could not load profile"
	}
	return resp, nil
}

// PUT /api/auth/profile
func (a *AccountManager) updateProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	update := model.ProfileUpdate{
		Username:  request.Username,
		FullName:  request.FullName,
		AvatarURL: request.AvatarURL,
	}
	if update.Empty() {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "nothing to update"}
	}

	if err := a.store.UpdateProfile(ctx.Request.Context(), user.ID, update); err != nil {
		return nil, profileWriteError(err, user)
	}
	return a.getProfile(ctx, user)
}

// POST /api/auth/onboarding
//
// Stores the chosen username and initial prayer times with default
// reminder settings.
func (a *AccountManager) completeOnboarding(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.OnboardingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings := model.DefaultSettings()
	settings.PrayerTimes = request.PrayerTimes
	if err := settings.Validate(); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := a.store.CompleteOnboarding(ctx.Request.Context(), user.ID, request.Username, settings); err != nil {
		return nil, profileWriteError(err, user)
	}
	if a.settings != nil {
		a.settings.Resync(ctx.Request.Context(), user.ID)
	}
	log.Info().Str("user_id", user.ID.String()).Msg("onboarding completed")
	return a.getProfile(ctx, user)
}

func profileWriteError(err error, user *model.User) *api.APIError {
	switch {
	case errors.Is(err, db.ErrUsernameTaken):
		return &api.APIError{Code: http.StatusConflict, Message: "username already taken"}
	case errors.Is(err, sql.ErrNoRows):
		return &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	default:
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("could not save profile")
		return &api.APIError{Code: http.StatusInternalServerError, Message: "could not save profile"}
	}
}
