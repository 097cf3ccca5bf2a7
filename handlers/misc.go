package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "GameForge AI API", "version": apiVersion})
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// PluginStatus is a placeholder until the editor plugin sync channel ships.
func (h *Handlers) PluginStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected":   false,
		"last_synced": nil,
		"message":     "Plugin not connected",
	})
}
