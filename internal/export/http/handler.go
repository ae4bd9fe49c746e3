package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/service"
	"github.com/kjbranchesi/alf-coach-backend/internal/export"
)

type Handler struct {
	svc *service.BlueprintService
}

// RegisterBlueprintSubroutes mounts the export route under the blueprints
// group.
func RegisterBlueprintSubroutes(rg *gin.RouterGroup, svc *service.BlueprintService) {
	h := &Handler{svc: svc}
	rg.GET("/:id/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	userID := auth.UserID(c)
	sum, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	payload, contentType, err := export.Render(&sum.Blueprint, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	filename := export.Filename(&sum.Blueprint, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
