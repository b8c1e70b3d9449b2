package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

// CtxUserIDKey is the gin context key holding the authenticated
// identity (the token subject). Handlers read it with c.GetString.
const CtxUserIDKey = "userID"

// Auth extracts the bearer token from the Authorization header,
// validates it, and puts the subject into the request context. Any
// token failure degrades to 401; parse errors never propagate.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		subject, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, subject)
		c.Next()
	}
}
