package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"core/internal/middleware"
	"core/internal/model"
	"core/internal/repository"

	"github.com/gin-gonic/gin"
)

// ConversationHandler exposes the conversation store as plain CRUD. A nil
// repository means no store is configured; every route then answers 503.
type ConversationHandler struct {
	repo *repository.PostgresRepository
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(repo *repository.PostgresRepository) *ConversationHandler {
	return &ConversationHandler{repo: repo}
}

func (h *ConversationHandler) available(c *gin.Context) bool {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Conversation store is not configured"})
		return false
	}
	return true
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req model.ConversationUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	conv, err := h.repo.CreateConversation(c.Request.Context(), middleware.UserID(c), req.Title, req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}
	conversations, err := h.repo.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations: " + err.Error()})
		return
	}
	if conversations == nil {
		conversations = []model.Conversation{}
	}
	c.JSON(http.StatusOK, conversations)
}

// Get handles GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(c *gin.Context) {
	if !h.available(c) {
		return
	}
	conv, err := h.repo.GetConversation(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get conversation: " + err.Error()})
		return
	}
	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	c.JSON(http.StatusOK, conv)
}

// Update handles PUT /api/v1/conversations/:id
func (h *ConversationHandler) Update(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req model.ConversationUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.repo.UpdateConversation(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Title, req.Messages)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/v1/conversations/:id
func (h *ConversationHandler) Delete(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if err := h.repo.DeleteConversation(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
