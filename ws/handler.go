package ws

import (
	"context"
	"net/http"

	"gallery_backend/internal/handlers"
	"gallery_backend/internal/logger"
	"gallery_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// browsers cannot send the Authorization header on upgrade; the
	// token travels in the query and is checked before upgrading
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	*handlers.BaseHandler
	Manager           *Manager
	monitoringService services.MonitoringService
}

func NewWebSocketHandler(base *handlers.BaseHandler, manager *Manager, monitoringService services.MonitoringService) *WebSocketHandler {
	return &WebSocketHandler{
		BaseHandler:       base,
		Manager:           manager,
		monitoringService: monitoringService,
	}
}

func (h *WebSocketHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/monitoring/ws", h.RequireAuth, h.ServeWS)
}

// ServeWS upgrades the request and streams the caller's scan events.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db := h.GetDB(c)

	// the request context ends when this handler returns
	ctx, cancel := context.WithCancel(logger.WithUserID(context.Background(), userID))

	events, unsubscribe, err := h.monitoringService.Subscribe(ctx, userID)
	if err != nil {
		cancel()
		h.HandleServiceError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		unsubscribe()
		cancel()
		logger.CtxWithError(ctx, "WebSocket upgrade error", err)
		return
	}

	client := &Client{
		UserID:     userID,
		conn:       conn,
		send:       make(chan OutgoingMessage, sendBuffer),
		events:     events,
		manager:    h.Manager,
		db:         db,
		monitoring: h.monitoringService,
		ctx:        ctx,
		cancel: func() {
			unsubscribe()
			cancel()
		},
	}

	if !h.Manager.add(client) {
		client.cancel()
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}
