package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
)

// Register mounts the identity routes. The SPA reads exactly this shape to
// gate its loading screen.
func Register(rg *gin.RouterGroup) {
	rg.GET("/me", me)
}

func me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"userId":      auth.UserID(c),
		"isAnonymous": auth.IsAnonymous(c),
	})
}
