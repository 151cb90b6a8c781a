package middleware

import (
	"net/http"
	"strings"

	"autosave/models"
	"autosave/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity in the context. The raw token is kept so it can be forwarded to the
// savings API.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		c.Set(utils.ContextUserID, userID)
		c.Set(utils.ContextAuthToken, tokenString)
		c.Next()
	}
}

// AuthSessionFrom returns the session the auth middleware established.
func AuthSessionFrom(c *gin.Context) (models.AuthSession, bool) {
	userID := c.GetString(utils.ContextUserID)
	if userID == "" {
		return models.AuthSession{}, false
	}
	return models.AuthSession{UserID: userID, Token: c.GetString(utils.ContextAuthToken)}, true
}
