package middleware

import (
	"context"
	"strings"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/logger"
	"gallery_backend/pkg/apperrors"
	"gallery_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, db *gorm.DB, token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid bearer token whose session still
// exists. It must run after DBMiddleware.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), db, tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.SessionIDKey, claims.SessionID())
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter for WebSocket upgrades.
func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		return token, token != ""
	}
	if token := c.Query("token"); token != "" && websocketUpgrade(c) {
		return token, true
	}
	return "", false
}

func websocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}
