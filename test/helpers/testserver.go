package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gallery_backend/internal/app"
	"gallery_backend/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.App
}

// TestConfig is config.Default tuned for fast, hermetic tests.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.DSN = ":memory:"
	cfg.JWT.Secret = "test_secret_key_for_gallery"
	cfg.Monitoring.BaseDelay = 20 * time.Millisecond
	cfg.Monitoring.Jitter = 0
	cfg.Monitoring.Notifier = "memory"
	return cfg
}

// NewTestServer serves the full router over a seeded in-memory database.
// Workers run until the test ends.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig())
}

func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	db := NewSeededTestDB(t)

	application, err := app.New(cfg, db)
	require.NoError(t, err, "wire application")

	ctx, cancel := context.WithCancel(context.Background())
	application.Start(ctx)

	server := httptest.NewServer(application.Router)

	t.Cleanup(func() {
		server.Close()
		cancel()
		application.Shutdown()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    application,
	}
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "build request")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "send request")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "read response body")

	return res, string(resBodyBytes)
}

// DecodeJSON unmarshals a response body into out.
func DecodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "decode response: %s", body)
}

// SignIn logs in with the seed password and returns the bearer token.
func (ts *TestServer) SignIn(t *testing.T, email string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{
		"email":    email,
		"password": DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "sign in %s: %s", email, body)

	var resp struct {
		Token string `json:"token"`
	}
	DecodeJSON(t, body, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// SignUpWithProfile registers a fresh user, saves a profile with one
// portfolio image and returns the token and the profile id.
func (ts *TestServer) SignUpWithProfile(t *testing.T, name, role string) (token, profileID string) {
	t.Helper()

	email := fmt.Sprintf("signup_%d@test.com", Unique())
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": DefaultPassword,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "sign up: %s", body)

	var auth struct {
		Token string `json:"token"`
	}
	DecodeJSON(t, body, &auth)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", auth.Token, map[string]interface{}{
		"name": name,
		"role": role,
		"bio":  name + " bio",
		"portfolio": []map[string]string{
			{"url": "https://images.test/" + email + "/1.jpg", "caption": "first"},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "save profile: %s", body)

	var profile struct {
		ID string `json:"id"`
	}
	DecodeJSON(t, body, &profile)
	return auth.Token, profile.ID
}
