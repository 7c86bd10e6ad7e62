package handlers

import (
	"net/http"

	"gallery_backend/internal/services"
	"gallery_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	gigs := r.Group("/gigs/:gigId")
	gigs.Use(h.RequireAuth)
	{
		gigs.POST("/applications", h.Apply)
		gigs.GET("/applications", h.ListForGig)
		gigs.GET("/applied", h.HasApplied)
	}

	applications := r.Group("/applications/:applicationId")
	applications.Use(h.RequireAuth)
	{
		applications.POST("/accept", h.Accept)
		applications.POST("/reject", h.Reject)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), userID, c.Param("gigId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListForGig(c *gin.Context) {
	apps, err := h.applicationService.ListForGig(c.Request.Context(), h.GetDB(c), c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applied, err := h.applicationService.HasApplied(c.Request.Context(), h.GetDB(c), c.Param("gigId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HasAppliedResponse{Applied: applied})
}

// Accept hires the applicant and returns the application with its new agreement.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.Accept(c.Request.Context(), h.GetDB(c), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Reject(c.Request.Context(), h.GetDB(c), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
