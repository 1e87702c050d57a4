package endpoints_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/salah/internal/db"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/auth/endpoints"
	"github.com/Nixie-Tech-LLC/salah/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

const secret = "test-secret"

type accounts struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*model.User
	profiles   map[uuid.UUID]*model.Profile
	settings   map[uuid.UUID]model.Settings
	profileErr error
}

func newAccounts() *accounts {
	return &accounts{
		users:    make(map[uuid.UUID]*model.User),
		profiles: make(map[uuid.UUID]*model.Profile),
		settings: make(map[uuid.UUID]model.Settings),
	}
}

func (a *accounts) CreateUser(_ context.Context, email, hashed string) (uuid.UUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := &model.User{ID: uuid.New(), Email: email, HashedPassword: hashed}
	a.users[u.ID] = u
	a.profiles[u.ID] = &model.Profile{ID: u.ID}
	return u.ID, nil
}

func (a *accounts) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (a *accounts) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if u, ok := a.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (a *accounts) GetProfile(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profileErr != nil {
		return nil, a.profileErr
	}
	p, ok := a.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (a *accounts) usernameTaken(id uuid.UUID, name string) bool {
	for other, p := range a.profiles {
		if other != id && p.Username != nil && *p.Username == name {
			return true
		}
	}
	return false
}

func (a *accounts) UpdateProfile(_ context.Context, id uuid.UUID, u model.ProfileUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.profiles[id]
	if !ok {
		return sql.ErrNoRows
	}
	if u.Username != nil && a.usernameTaken(id, *u.Username) {
		return db.ErrUsernameTaken
	}
	if u.Username != nil {
		p.Username = u.Username
	}
	if u.FullName != nil {
		p.FullName = u.FullName
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	return nil
}

func (a *accounts) CompleteOnboarding(_ context.Context, id uuid.UUID, username string, settings model.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.usernameTaken(id, username) {
		return db.ErrUsernameTaken
	}
	p, ok := a.profiles[id]
	if !ok {
		p = &model.Profile{ID: id}
		a.profiles[id] = p
	}
	p.Username = &username
	a.settings[id] = settings
	return nil
}

type resyncs struct {
	mu    sync.Mutex
	users []uuid.UUID
}

func (r *resyncs) Resync(_ context.Context, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, id)
}

func newRouter(store *accounts) *gin.Engine {
	return newRouterWithListener(store, &resyncs{})
}

func newRouterWithListener(store *accounts, listener *resyncs) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, endpoints.AuthPublicModule(secret, store))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: secret, Users: store},
		endpoints.AuthSessionModule(secret, store, listener))
	return r
}

func send(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, r *gin.Engine) packets.TokenResponse {
	t.Helper()
	w := send(r, http.MethodPost, "/api/auth/signup", `{"email":"user@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	r := newRouter(newAccounts())
	created := signup(t, r)

	w := send(r, http.MethodPost, "/api/auth/signup", `{"email":"user@example.com","password":"correct-horse"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(r, http.MethodPost, "/api/auth/signup", `{"email":"not-an-email","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"wrong-horse"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, created.UserID, login.UserID)
}

func TestProfileStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want model.ProfileStatus
	}{
		{"success", nil, model.ProfileSuccess},
		{"missing", sql.ErrNoRows, model.ProfileMissing},
		{"policy", errors.New(`infinite recursion detected in policy for relation "profiles"`), model.ProfilePolicyError},
		{"other", errors.New("connection reset"), model.ProfileError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newAccounts()
			r := newRouter(store)
			token := signup(t, r).Token
			store.profileErr = tc.err

			w := send(r, http.MethodGet, "/api/auth/profile", "", token)
			require.Equal(t, http.StatusOK, w.Code)
			var resp packets.ProfileResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.want, resp.Status)
			assert.Equal(t, "user@example.com", resp.Email)
			assert.Equal(t, tc.err == nil, resp.Profile != nil)
		})
	}
}

func TestProfileRequiresToken(t *testing.T) {
	r := newRouter(newAccounts())
	w := send(r, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	store := newAccounts()
	r := newRouter(store)
	token := signup(t, r).Token

	w := send(r, http.MethodPut, "/api/auth/profile", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, "/api/auth/profile", `{"username":"ab"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, "/api/auth/profile", `{"username":"abdullah","full_name":"Abdullah Khan","avatar_url":"avatar_2"}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "abdullah", *resp.Profile.Username)
	assert.Equal(t, "Abdullah Khan", *resp.Profile.FullName)
	assert.Equal(t, "avatar_2", *resp.Profile.AvatarURL)

	// partial update keeps the other fields
	w = send(r, http.MethodPut, "/api/auth/profile", `{"avatar_url":"avatar_5"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abdullah", *resp.Profile.Username)
	assert.Equal(t, "avatar_5", *resp.Profile.AvatarURL)

	w = send(r, http.MethodPost, "/api/auth/signup", `{"email":"second@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var second packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	w = send(r, http.MethodPut, "/api/auth/profile", `{"username":"abdullah"}`, second.Token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteOnboarding(t *testing.T) {
	store := newAccounts()
	listener := &resyncs{}
	r := newRouterWithListener(store, listener)
	created := signup(t, r)

	times, err := json.Marshal(model.DefaultPrayerTimes())
	require.NoError(t, err)

	w := send(r, http.MethodPost, "/api/auth/onboarding", `{"username":"abdullah","prayerTimes":[]}`, created.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, listener.users)

	w = send(r, http.MethodPost, "/api/auth/onboarding", `{"username":"abdullah","prayerTimes":`+string(times)+`}`, created.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ProfileSuccess, resp.Status)
	assert.Equal(t, "abdullah", *resp.Profile.Username)

	saved := store.settings[created.UserID]
	assert.False(t, saved.NotificationsEnabled)
	assert.Equal(t, model.DefaultReminderLeadTime, saved.ReminderLeadTime)
	assert.Equal(t, model.DefaultPrayerTimes(), saved.PrayerTimes)
	assert.Equal(t, []uuid.UUID{created.UserID}, listener.users)
}
