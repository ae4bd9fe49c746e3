package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/service"
	"github.com/kjbranchesi/alf-coach-backend/internal/coach"
)

type Handler struct {
	coach *coach.Service
	svc   *service.BlueprintService
}

// RegisterBlueprintSubroutes mounts the chat turn under the blueprints group.
func RegisterBlueprintSubroutes(rg *gin.RouterGroup, coachSvc *coach.Service, bpSvc *service.BlueprintService) {
	h := &Handler{coach: coachSvc, svc: bpSvc}
	rg.POST("/:id/chat", h.chat)
}

type chatReq struct {
	Message string          `json:"message"`
	History []coach.Message `json:"history"`
}

// chat runs one coach turn for the blueprint. A model failure still returns
// 200 with a fallback reply: the product treats AI failures as
// conversational hiccups, not faults.
func (h *Handler) chat(c *gin.Context) {
	userID := auth.UserID(c)
	id := c.Param("id")

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sum, err := h.svc.Get(c.Request.Context(), userID, id)
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	turn := h.coach.Turn(c.Request.Context(), coach.TurnRequest{
		Blueprint: &sum.Blueprint,
		History:   req.History,
		Message:   req.Message,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true, "turn": turn})
}
