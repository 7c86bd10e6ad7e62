package ws_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"gallery_backend/test/helpers"
	"gallery_backend/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, ts *helpers.TestServer, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/api/v1/monitoring/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg struct {
			Type string                 `json:"type"`
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg.Data
		}
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, res, err := dial(t, ts, "")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestWebSocket_StartMonitoringAndReceiveResult(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token := ts.SignIn(t, "elara@test.com")

	conn, _, err := dial(t, ts, token)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return ts.App.WSManager.IsUserConnected("user1") },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": ws.ActionPing}))
	readUntil(t, conn, ws.TypePong)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "dance"}))
	errData := readUntil(t, conn, ws.TypeError)
	assert.Contains(t, errData["message"], "unknown action")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"action": ws.ActionStartMonitoring,
		"data":   map[string]string{"imageId": "p1-2"},
	}))
	started := readUntil(t, conn, ws.TypeMonitoringStarted)
	assert.Equal(t, "Scanning", started["status"])

	event := readUntil(t, conn, "scan_completed")
	assert.Equal(t, "user1", event["userId"])
	image, ok := event["image"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1-2", image["id"])
	assert.Equal(t, "Monitored", image["status"])

	// someone else's image
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"action": ws.ActionStartMonitoring,
		"data":   map[string]string{"imageId": "p2-1"},
	}))
	readUntil(t, conn, ws.TypeError)

	conn.Close()
	assert.Eventually(t, func() bool { return ts.App.WSManager.GetClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}
