package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/service"
)

type Handler struct {
	svc *service.BlueprintService
}

func Register(rg *gin.RouterGroup, svc *service.BlueprintService) {
	h := &Handler{svc: svc}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/deleted", h.listDeleted)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.save)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/restore", h.restore)
	rg.POST("/:id/complete", h.complete)
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blueprints": items})
}

func (h *Handler) listDeleted(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.svc.ListDeleted(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blueprints": items})
}

func (h *Handler) get(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"ok": true, "blueprint": sum})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	b := &domain.Blueprint{
		ID:     req.ID,
		UserID: auth.UserID(c),
		Wizard: req.Wizard,
	}
	sum, err := h.svc.Save(c.Request.Context(), b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "blueprint": sum})
}

func (h *Handler) save(c *gin.Context) {
	userID := auth.UserID(c)
	id := c.Param("id")

	existing, err := h.svc.Get(c.Request.Context(), userID, id)
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	b := existing.Blueprint
	b.Wizard = req.Wizard
	b.Ideation = req.Ideation
	b.Journey = req.Journey
	b.Deliverables = req.Deliverables
	b.CurrentStep = req.CurrentStep

	sum, err := h.svc.Save(c.Request.Context(), &b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blueprint": sum})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserID(c)
	ok, err := h.svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) restore(c *gin.Context) {
	userID := auth.UserID(c)
	ok, err := h.svc.Restore(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found or already purged"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) complete(c *gin.Context) {
	userID := auth.UserID(c)
	sum, err := h.svc.Complete(c.Request.Context(), userID, c.Param("id"))
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "blueprint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blueprint": sum})
}
