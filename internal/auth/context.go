package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID      = "user_id"
	CtxIsAnonymous = "is_anonymous"
)

// UserID extracts the authenticated user id from the Gin context. Set by
// TokenMiddleware (or OptionalUser in development).
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// IsAnonymous reports whether the current session is a guest session signed
// in through the anonymous provider.
func IsAnonymous(c *gin.Context) bool {
	return c.GetBool(CtxIsAnonymous)
}
