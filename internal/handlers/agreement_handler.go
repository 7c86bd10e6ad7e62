package handlers

import (
	"net/http"

	"gallery_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AgreementHandler struct {
	*BaseHandler
	agreementService services.AgreementService
}

func NewAgreementHandler(base *BaseHandler, agreementService services.AgreementService) *AgreementHandler {
	return &AgreementHandler{
		BaseHandler:      base,
		agreementService: agreementService,
	}
}

func (h *AgreementHandler) RegisterRoutes(r *gin.RouterGroup) {
	agreements := r.Group("/agreements")
	agreements.Use(h.RequireAuth)
	{
		agreements.GET("/:agreementId", h.GetAgreement)
		agreements.POST("/:agreementId/sign", h.Sign)
		agreements.GET("/profile/:profileId", h.ListForProfile)
	}
}

// GetAgreement is visible to the two parties only.
func (h *AgreementHandler) GetAgreement(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	agreement, err := h.agreementService.GetAgreementForUser(c.Request.Context(), h.GetDB(c), userID, c.Param("agreementId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreement)
}

func (h *AgreementHandler) ListForProfile(c *gin.Context) {
	agreements, err := h.agreementService.ListForProfile(c.Request.Context(), h.GetDB(c), c.Param("profileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreements)
}

func (h *AgreementHandler) Sign(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	agreement, err := h.agreementService.SignAsUser(c.Request.Context(), h.GetDB(c), userID, c.Param("agreementId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, agreement)
}
