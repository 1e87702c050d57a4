package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/salah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

type oneUser struct{ user *model.User }

func (o oneUser) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if id == o.user.ID {
		return o.user, nil
	}
	return nil, sql.ErrNoRows
}

func TestMountGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := &model.User{ID: uuid.New(), Email: "a@example.com"}
	tagged := func(c *gin.Context) { c.Header("X-Group", "private"); c.Next() }

	r := gin.New()
	MountGroup(r, GroupConfig{Prefix: "/api"}, ModuleFunc(func(c *Controller) {
		c.PUBLIC_GET("/ping", func(*gin.Context) (any, *APIError) { return gin.H{"ok": true}, nil })
		c.PUBLIC_POST("/fail", func(*gin.Context) (any, *APIError) {
			return nil, &APIError{Code: http.StatusTeapot, Message: "nope"}
		})
	}))
	MountGroup(r, GroupConfig{Prefix: "/api", Auth: true, SecretKey: "k", Users: oneUser{user}, Middleware: []gin.HandlerFunc{tagged}},
		ModuleFunc(func(c *Controller) {
			c.GET("/me", func(_ *gin.Context, u *model.User) (any, *APIError) { return gin.H{"email": u.Email}, nil })
			c.DELETE("/me", func(_ *gin.Context, u *model.User) (any, *APIError) { return gin.H{}, nil })
		}))

	call := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call(http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = call(http.MethodPost, "/api/fail", "")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())

	w = call(http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "private", w.Header().Get("X-Group"))

	token, err := middleware.GenerateJWT(user.ID, "k")
	require.NoError(t, err)
	w = call(http.MethodGet, "/api/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@example.com"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, call(http.MethodDelete, "/api/me", token).Code)
}
