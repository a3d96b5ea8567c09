package handler

import (
	"net/http"

	"core/internal/middleware"
	"core/internal/repository"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the per-user settings store
type SettingsHandler struct {
	repo *repository.PostgresRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repo *repository.PostgresRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

type settingPayload struct {
	Value string `json:"value"`
}

// Get handles GET /api/v1/settings/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Settings store is not configured"})
		return
	}
	value, err := h.repo.GetSetting(c.Request.Context(), middleware.UserID(c), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get setting: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": value})
}

// Put handles PUT /api/v1/settings/:key
func (h *SettingsHandler) Put(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Settings store is not configured"})
		return
	}
	var payload settingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.repo.PutSetting(c.Request.Context(), middleware.UserID(c), c.Param("key"), payload.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to put setting: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
