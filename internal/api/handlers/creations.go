package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pagecanvas/canvas-api/internal/api/middleware"
	"github.com/pagecanvas/canvas-api/internal/logger"
	"gorm.io/gorm"
)

// CreationsHandler serves the CRUD surface over saved creations
type CreationsHandler struct {
	store CreationStore
}

// NewCreationsHandler creates a new creations handler
func NewCreationsHandler(store CreationStore) *CreationsHandler {
	return &CreationsHandler{store: store}
}

// RenameCreationRequest is the payload for renaming a creation
type RenameCreationRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /api/v1/creations
func (h *CreationsHandler) List(c *gin.Context) {
	ownerID, _ := middleware.GetUserIDFromGateway(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	creations, err := h.store.List(ownerID, limit)
	if err != nil {
		logger.Error("Failed to list creations", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list creations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creations": creations,
		"count":     len(creations),
	})
}

// Get handles GET /api/v1/creations/:id
func (h *CreationsHandler) Get(c *gin.Context) {
	ownerID, _ := middleware.GetUserIDFromGateway(c)

	creation, err := h.store.Get(ownerID, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Failed to load creation")
		return
	}

	c.JSON(http.StatusOK, creation)
}

// Rename handles PATCH /api/v1/creations/:id
func (h *CreationsHandler) Rename(c *gin.Context) {
	var req RenameCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, _ := middleware.GetUserIDFromGateway(c)
	creation, err := h.store.Rename(ownerID, c.Param("id"), req.Name)
	if err != nil {
		h.respondStoreError(c, err, "Failed to rename creation")
		return
	}

	c.JSON(http.StatusOK, creation)
}

// Delete handles DELETE /api/v1/creations/:id
func (h *CreationsHandler) Delete(c *gin.Context) {
	ownerID, _ := middleware.GetUserIDFromGateway(c)

	if err := h.store.Delete(ownerID, c.Param("id")); err != nil {
		h.respondStoreError(c, err, "Failed to delete creation")
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /api/v1/creations/:id/export and returns the stored
// document as a standalone HTML download.
func (h *CreationsHandler) Export(c *gin.Context) {
	ownerID, _ := middleware.GetUserIDFromGateway(c)

	creation, err := h.store.Get(ownerID, c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err, "Failed to load creation")
		return
	}

	filename := fmt.Sprintf("%s.html", creation.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(creation.HTML))
}

func (h *CreationsHandler) respondStoreError(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creation not found"})
		return
	}
	logger.Error(msg, err, logger.WithContext(c))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
