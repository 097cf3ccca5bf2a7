package handlers

import (
	"errors"
	"net/http"

	"gameforge/middleware"
	"gameforge/services"
	"gameforge/store"

	"github.com/gin-gonic/gin"
)

const defaultModel = "nex-agi/deepseek-v3.1-nex-n1:free"

type ChatInput struct {
	ProjectID string `json:"project_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Model     string `json:"model"`
}

func (h *Handlers) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Model == "" {
		input.Model = defaultModel
	}

	user := middleware.CurrentUser(c)

	userMsg, aiMsg, err := h.chat.Send(c.Request.Context(), user, input.ProjectID, input.Message, input.Model)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		case errors.Is(err, services.ErrQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily chat limit reached. Upgrade to premium for unlimited chats."})
		case errors.Is(err, services.ErrProviderTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "AI service timeout"})
		case errors.Is(err, services.ErrProvider):
			h.log.Error("chat provider failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service unavailable"})
		default:
			h.log.Error("chat failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_message": userMsg, "ai_message": aiMsg})
}

func (h *Handlers) ListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	projectID := c.Param("projectId")
	ctx := c.Request.Context()

	if _, err := h.store.Project(ctx, projectID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	msgs, err := h.store.MessagesByProject(ctx, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, msgs)
}
