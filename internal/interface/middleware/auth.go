package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/pkg/helpers"
	"github.com/devconnect/api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth gates protected routes. It reads the bearer token from the
// Authorization header, verifies it, and injects the claimed identity into
// the Gin context. Verification needs only the token and the shared secret;
// no session store is consulted.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, tokenErrorMessage(err), nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenExpired):
		return "access token expired"
	case errors.Is(err, helpers.ErrTokenMalformed):
		return "malformed access token"
	default:
		return "invalid access token"
	}
}
