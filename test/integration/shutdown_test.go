package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"gallery_backend/internal/app"
	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerShutdownEndsOpenEventStreams(t *testing.T) {
	db := helpers.NewSeededTestDB(t)
	application, err := app.New(helpers.TestConfig(), db)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	application.Start(ctx)
	defer application.Shutdown()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := application.HTTPServer(ln.Addr().String())
	go func() { _ = srv.Serve(ln) }()
	baseURL := "http://" + ln.Addr().String()

	signIn, err := http.Post(baseURL+"/api/v1/auth/signin", "application/json",
		strings.NewReader(`{"email":"elara@test.com","password":"`+helpers.DefaultPassword+`"}`))
	require.NoError(t, err)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(signIn.Body).Decode(&auth))
	signIn.Body.Close()
	require.NotEmpty(t, auth.Token)

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/monitoring/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelShutdown()
	started := time.Now()
	require.NoError(t, srv.Shutdown(shutdownCtx))
	assert.Less(t, time.Since(started), 2*time.Second)

	// the stream ends instead of waiting for the client to hang up
	_, err = io.ReadAll(stream.Body)
	assert.NoError(t, err)
}
