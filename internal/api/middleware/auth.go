package middleware

import (
	"net/http"
	"strings"

	"finledger/internal/api/dto"
	"finledger/internal/auth"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's id (int64).
const UserIDKey = "userID"

// AccessTokenVerifier is satisfied by *auth.TokenIssuer.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// A missing or non-Bearer Authorization header is "not provided"; every
// verification failure is reported the same way.
func AuthMiddleware(verifier AccessTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Token não fornecido"})
			return
		}

		claims, err := verifier.VerifyAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Token inválido"})
			return
		}

		// Set user id in context for handlers to use
		c.Set(UserIDKey, claims.UserID)

		c.Next()
	}
}

// UserID returns the id bound by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// bearerToken extracts <token> from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
