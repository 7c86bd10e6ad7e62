package handlers

import (
	"net/http"

	"gallery_backend/internal/services"
	"gallery_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/reviews")
	{
		public.GET("/gig/:gigId/reviewer/:profileId", h.ListByGigAndReviewer)
	}

	protected := r.Group("/reviews")
	protected.Use(h.RequireAuth)
	{
		protected.POST("", h.SubmitReview)
	}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListByGigAndReviewer(c *gin.Context) {
	reviews, err := h.reviewService.ListByGigAndReviewer(c.Request.Context(), h.GetDB(c), c.Param("gigId"), c.Param("profileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
