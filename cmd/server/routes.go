package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/salah/internal/config"
	"github.com/Nixie-Tech-LLC/salah/internal/db"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/salah/internal/http/api/auth/endpoints"
	trackerapi "github.com/Nixie-Tech-LLC/salah/internal/http/api/tracker/endpoints"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, registry *tracker.Registry) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Users:     store,
	},
		authapi.AuthSessionModule(cfg.JWTSecret, store, registry),
		trackerapi.PrayerModule(registry),
		trackerapi.BadgeModule(registry),
		trackerapi.SettingsModule(registry),
	)
}
