// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/skillify-dev/skillify/internal/auth"
	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/recommend"
	"github.com/skillify-dev/skillify/internal/store"
)

// stubCatalog is a configurable catalog.API double.
type stubCatalog struct {
	mu          sync.Mutex
	searchCalls int
	resources   []models.Resource
	searchErr   error
	video       *models.Resource
	videoErr    error
}

func (s *stubCatalog) Search(ctx context.Context, opts catalog.SearchOptions) (*catalog.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return &catalog.SearchResult{Resources: s.resources}, nil
}

func (s *stubCatalog) Video(ctx context.Context, id string) (*models.Resource, error) {
	if s.videoErr != nil {
		return nil, s.videoErr
	}
	if s.video != nil {
		return s.video, nil
	}
	return nil, catalog.ErrVideoNotFound
}

func (s *stubCatalog) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls
}

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testEnv struct {
	t       *testing.T
	server  *httptest.Server
	store   *store.Store
	jwt     *auth.JWTManager
	catalog *stubCatalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(config.DatabaseConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, Timeout: 10 * time.Second},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret-at-least-32-characters-long",
			TokenTTL:          time.Hour,
			BcryptCost:        4,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Recommend: config.RecommendConfig{
			SearchConcurrency: 2,
			DefaultPageSize:   12,
			MaxPageSize:       50,
		},
		Uploads: config.UploadsConfig{Dir: t.TempDir()},
	}

	cat := &stubCatalog{}
	recommender := recommend.NewAggregator(st, cat, cfg.Recommend)
	jwtManager := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	handlers := NewHandlers(st, cat, recommender, jwtManager, hasher, cfg)
	server := httptest.NewServer(SetupRouter(handlers, jwtManager, cfg))
	t.Cleanup(server.Close)

	return &testEnv{t: t, server: server, store: st, jwt: jwtManager, catalog: cat}
}

// request performs an HTTP call and decodes the envelope.
func (e *testEnv) request(method, path, token string, body interface{}) (int, envelope) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(e.t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(e.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func (e *testEnv) decodeData(env envelope, dst interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(env.Data, dst))
}

// registerUser creates an account through the API and returns its ID and
// token.
func (e *testEnv) registerUser(name, email string) (string, string) {
	e.t.Helper()

	status, env := e.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(e.t, http.StatusCreated, status, "register %s: %+v", name, env.Error)

	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	e.decodeData(env, &data)
	require.NotEmpty(e.t, data.Token)
	return data.User.ID, data.Token
}

// seedAdmin creates an admin account directly in the store and mints a
// token for it.
func (e *testEnv) seedAdmin() (string, string) {
	e.t.Helper()

	admin := &models.User{
		ID:        "admin-1",
		Name:      "root",
		Email:     "root@example.com",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(e.t, e.store.CreateUser(context.Background(), admin))

	token, err := e.jwt.GenerateToken(admin)
	require.NoError(e.t, err)
	return admin.ID, token
}

func (e *testEnv) createSkill(token, name string) string {
	e.t.Helper()

	status, env := e.request(http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"name": name,
	})
	require.Equal(e.t, http.StatusCreated, status, "create skill: %+v", env.Error)

	var skill models.Skill
	e.decodeData(env, &skill)
	return skill.ID
}

func (e *testEnv) createGoal(token, title string, skillIDs []string) string {
	e.t.Helper()

	status, env := e.request(http.MethodPost, "/api/v1/goals", token, map[string]interface{}{
		"title":      title,
		"skillIds":   skillIDs,
		"startDate":  "2026-01-01",
		"targetDate": "2026-06-01",
	})
	require.Equal(e.t, http.StatusCreated, status, "create goal: %+v", env.Error)

	var goal models.Goal
	e.decodeData(env, &goal)
	return goal.ID
}

func (e *testEnv) createPost(token, title string) string {
	e.t.Helper()

	status, env := e.request(http.MethodPost, "/api/v1/posts", token, map[string]interface{}{
		"title":   title,
		"content": "some content",
	})
	require.Equal(e.t, http.StatusCreated, status, "create post: %+v", env.Error)

	var post models.Post
	e.decodeData(env, &post)
	return post.ID
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.request(http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
}

func TestAuthRequired(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/api/v1/skills", "/api/v1/goals", "/api/v1/posts", "/api/v1/users/me"} {
		status, env := e.request(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, status, "path %s", path)
		require.False(t, env.Success)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	status, _ := e.request(http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"name":       "Go",
		"unexpected": true,
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestValidationFailure(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "x", // below minimum length
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}
