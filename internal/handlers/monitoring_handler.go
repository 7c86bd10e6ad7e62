package handlers

import (
	"io"
	"net/http"
	"time"

	"gallery_backend/internal/logger"
	"gallery_backend/internal/services"
	"gallery_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const sseKeepAlive = 25 * time.Second

type MonitoringHandler struct {
	*BaseHandler
	monitoringService services.MonitoringService
}

func NewMonitoringHandler(base *BaseHandler, monitoringService services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		BaseHandler:       base,
		monitoringService: monitoringService,
	}
}

func (h *MonitoringHandler) RegisterRoutes(r *gin.RouterGroup) {
	monitoring := r.Group("/monitoring")
	monitoring.Use(h.RequireAuth)
	{
		monitoring.GET("", h.ListMonitoredImages)
		monitoring.GET("/events", h.StreamEvents)
		monitoring.GET("/:imageId", h.GetMonitoredImage)
		monitoring.POST("/:imageId/start", h.StartMonitoring)
		monitoring.PUT("/:imageId/matches/:matchId", h.UpdateMatchStatus)
	}
}

// StartMonitoring answers 202 with the image in Scanning; the result is pushed
// on the events stream.
func (h *MonitoringHandler) StartMonitoring(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	image, err := h.monitoringService.StartMonitoring(c.Request.Context(), h.GetDB(c), userID, c.Param("imageId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, image)
}

func (h *MonitoringHandler) ListMonitoredImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	images, err := h.monitoringService.ListMonitoredImages(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *MonitoringHandler) GetMonitoredImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	image, err := h.monitoringService.GetMonitoredImage(c.Request.Context(), h.GetDB(c), userID, c.Param("imageId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *MonitoringHandler) UpdateMatchStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMatchStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	image, err := h.monitoringService.UpdateMatchStatus(
		c.Request.Context(), h.GetDB(c), userID, c.Param("imageId"), c.Param("matchId"), req.Status,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, image)
}

// StreamEvents pushes the caller's scan results as server-sent events until
// the client goes away.
func (h *MonitoringHandler) StreamEvents(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	events, cancel, err := h.monitoringService.Subscribe(ctx, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer cancel()

	logger.CtxInfo(ctx, "Scan event stream opened", "user_id", userID)

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Content-Type", "text/event-stream")
	// headers go out now so the client knows it is subscribed
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		case <-ctx.Done():
			return false
		}
	})

	logger.CtxInfo(ctx, "Scan event stream closed", "user_id", userID)
}
