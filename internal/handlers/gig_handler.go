package handlers

import (
	"net/http"

	"gallery_backend/internal/services"
	"gallery_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService services.GigService
}

func NewGigHandler(base *BaseHandler, gigService services.GigService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/gigs")
	{
		public.GET("", h.ListGigs)
		public.GET("/:gigId", h.GetGig)
		public.GET("/profile/:profileId", h.ListGigsByProfile)
	}

	protected := r.Group("/gigs")
	protected.Use(h.RequireAuth)
	{
		protected.POST("", h.PostGig)
	}
}

func (h *GigHandler) PostGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gig, err := h.gigService.PostGig(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gig)
}

// ListGigs returns every gig, newest first.
func (h *GigHandler) ListGigs(c *gin.Context) {
	gigs, err := h.gigService.ListGigs(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gigs)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.gigService.GetGig(c.Request.Context(), h.GetDB(c), c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}

func (h *GigHandler) ListGigsByProfile(c *gin.Context) {
	gigs, err := h.gigService.ListGigsByProfile(c.Request.Context(), h.GetDB(c), c.Param("profileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gigs)
}
