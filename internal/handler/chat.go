package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"core/internal/model"
	"core/internal/observability"
	"core/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const slotHint = "Si tu veux une analyse immo chiffrée, précise **ville + code postal** (ex: \"Bordeaux 33000\")."

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
	metrics     *observability.Metrics
	log         *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, metrics *observability.Metrics, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		metrics:     metrics,
		log:         log,
	}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message requis"})
		return
	}

	start := time.Now()
	resp, err := h.chatService.Respond(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUpstreamTimeout) {
			h.log.Warn("generative backend too slow", zap.Error(err))
			h.metrics.ChatErrors.WithLabelValues("upstream_timeout").Inc()
			h.metrics.ObserveChat(model.ActionError, time.Since(start))
			c.JSON(http.StatusGatewayTimeout, model.ChatResponse{
				Reply:  "⏳ L'analyse a pris trop de temps, réessaie dans un instant.\n\n" + slotHint,
				Action: model.ActionError,
			})
			return
		}

		// Full detail stays server-side; only a short excerpt reaches the reply
		h.log.Error("chat turn failed", zap.Error(err))
		h.metrics.ChatErrors.WithLabelValues("internal").Inc()
		h.metrics.ObserveChat(model.ActionError, time.Since(start))
		c.JSON(http.StatusInternalServerError, model.ChatResponse{
			Reply:  fmt.Sprintf("❌ Erreur lors de l'analyse: %s\n\n%s", excerpt(err.Error(), 120), slotHint),
			Action: model.ActionError,
		})
		return
	}

	h.metrics.ObserveChat(resp.Action, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

func excerpt(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
