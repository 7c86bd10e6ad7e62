package ws

import (
	"context"
	"encoding/json"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/monitoring"
	"gallery_backend/internal/services"
	"gallery_backend/pkg/apperrors"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Actions a client may send.
const (
	ActionPing            = "ping"
	ActionStartMonitoring = "start_monitoring"
)

// Message types the server sends besides notifier events.
const (
	TypePong              = "pong"
	TypeMonitoringStarted = "monitoring_started"
	TypeError             = "error"
)

type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type OutgoingMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Client struct {
	UserID string

	conn       *websocket.Conn
	send       chan OutgoingMessage
	events     <-chan monitoring.Event
	manager    *Manager
	db         *gorm.DB
	monitoring services.MonitoringService

	ctx    context.Context
	cancel context.CancelFunc
}

func (c *Client) readPump() {
	defer func() {
		c.manager.remove(c)
		c.cancel()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.CtxWithError(c.ctx, "WebSocket read error", err)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(OutgoingMessage{Type: TypeError, Data: errMessage("malformed message")})
			continue
		}
		c.handleMessage(msg)
	}
}

// writePump is the only goroutine that writes to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return

		case event, ok := <-c.events:
			if !ok {
				return
			}
			if !c.write(OutgoingMessage{Type: event.Type, Data: event}) {
				return
			}

		case msg := <-c.send:
			if !c.write(msg) {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(msg OutgoingMessage) bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		logger.CtxWithError(c.ctx, "WebSocket write error", err)
		return false
	}
	return true
}

func (c *Client) reply(msg OutgoingMessage) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case ActionPing:
		c.reply(OutgoingMessage{Type: TypePong})

	case ActionStartMonitoring:
		var payload struct {
			ImageID string `json:"imageId"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ImageID == "" {
			c.reply(OutgoingMessage{Type: TypeError, Data: errMessage("imageId is required")})
			return
		}
		image, err := c.monitoring.StartMonitoring(c.ctx, c.db, c.UserID, payload.ImageID)
		if err != nil {
			c.reply(OutgoingMessage{Type: TypeError, Data: errorData(err)})
			return
		}
		c.reply(OutgoingMessage{Type: TypeMonitoringStarted, Data: image})

	default:
		c.reply(OutgoingMessage{Type: TypeError, Data: errMessage("unknown action: " + msg.Action)})
	}
}

func errorData(err error) any {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return errMessage("internal error")
}

func errMessage(message string) map[string]string {
	return map[string]string{"message": message}
}
