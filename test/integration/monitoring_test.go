package integration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"gallery_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monitoredBody struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	Status   string     `json:"status"`
	LastScan *time.Time `json:"lastScan"`
	Matches  []struct {
		ID     string `json:"id"`
		URL    string `json:"url"`
		Status string `json:"status"`
	} `json:"matches"`
}

func waitMonitored(t *testing.T, ts *helpers.TestServer, token, imageID string) monitoredBody {
	t.Helper()
	var image monitoredBody
	require.Eventually(t, func() bool {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/monitoring/"+imageID, token, nil)
		if res.StatusCode != http.StatusOK {
			return false
		}
		helpers.DecodeJSON(t, body, &image)
		return image.Status == "Monitored"
	}, 5*time.Second, 20*time.Millisecond)
	return image
}

func TestMonitoringFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	owner := ts.SignIn(t, "aria@test.com")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/monitoring/p3-2", owner, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var idle monitoredBody
	helpers.DecodeJSON(t, body, &idle)
	assert.Equal(t, "Idle", idle.Status)
	assert.Empty(t, idle.Matches)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/monitoring/p3-1/start", owner, nil)
	require.Equal(t, http.StatusAccepted, res.StatusCode, body)
	var started monitoredBody
	helpers.DecodeJSON(t, body, &started)
	assert.Equal(t, "Scanning", started.Status)

	image := waitMonitored(t, ts, owner, "p3-1")
	assert.LessOrEqual(t, len(image.Matches), 3)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/monitoring", owner, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []monitoredBody
	helpers.DecodeJSON(t, body, &list)
	require.Len(t, list, 1, "only scanned images are listed")
	assert.Equal(t, "p3-1", list[0].ID)

	// another user can neither read nor scan it
	stranger := ts.SignIn(t, "ren@test.com")
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/monitoring/p3-1", stranger, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/monitoring/p3-1/start", stranger, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	if len(image.Matches) == 0 {
		return
	}
	match := image.Matches[0]
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/monitoring/p3-1/matches/"+match.ID, owner, map[string]string{"status": "Ignored"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/monitoring/p3-1/matches/"+match.ID, owner, map[string]string{"status": "Reviewed"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated monitoredBody
	helpers.DecodeJSON(t, body, &updated)
	require.Len(t, updated.Matches, len(image.Matches))
	for i, m := range updated.Matches {
		if m.ID == match.ID {
			assert.Equal(t, "Reviewed", m.Status)
		} else {
			assert.Equal(t, image.Matches[i].Status, m.Status)
		}
	}
}

func TestMonitoringEventsStream(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	owner := ts.SignIn(t, "liam@test.com")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.Server.URL+"/api/v1/monitoring/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+owner)

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	startRes, body := ts.SendRequest(t, http.MethodPost, "/api/v1/monitoring/p2-1/start", owner, nil)
	require.Equal(t, http.StatusAccepted, startRes.StatusCode, body)

	scanner := bufio.NewScanner(res.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			data = ""
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
		if event == "scan_completed" && data != "" {
			break
		}
	}
	require.Equal(t, "scan_completed", event)

	var payload struct {
		UserID string        `json:"userId"`
		Image  monitoredBody `json:"image"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "user2", payload.UserID)
	assert.Equal(t, "p2-1", payload.Image.ID)
	assert.Equal(t, "Monitored", payload.Image.Status)
}
