package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string                // required if Auth == true
	Users      middleware.UserLookup // required if Auth == true
	Middleware []gin.HandlerFunc     // optional additional middleware
}

// MountGroup creates a group under cfg.Prefix on parent, applies the extra
// middleware and, when cfg.Auth is set, the JWT middleware, then mounts
// every module on it. Misconfigured auth is a startup bug and aborts.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) *gin.RouterGroup {
	grp := parent.Group(cfg.Prefix, cfg.Middleware...)

	if cfg.Auth {
		if cfg.SecretKey == "" || cfg.Users == nil {
			log.Fatal().Str("prefix", cfg.Prefix).Msg("api.MountGroup: auth group needs SecretKey and Users")
		}
		grp.Use(middleware.JWTMiddleware(cfg.SecretKey, cfg.Users))
	}

	controller := &Controller{Group: grp}
	for _, m := range modules {
		m.Mount(controller)
	}
	log.Debug().Str("prefix", cfg.Prefix).Bool("auth", cfg.Auth).Int("modules", len(modules)).Msg("api group mounted")
	return grp
}
