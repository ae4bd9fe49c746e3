package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kjbranchesi/alf-coach-backend/internal/showcase"
)

// Register mounts the public showcase routes. No auth: the gallery is the
// signed-out landing experience.
func Register(rg *gin.RouterGroup) {
	rg.GET("", list)
	rg.GET("/:id", get)
}

func list(c *gin.Context) {
	projects, err := showcase.Library()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func get(c *gin.Context) {
	p, err := showcase.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "hero project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
