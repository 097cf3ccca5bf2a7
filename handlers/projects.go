package handlers

import (
	"errors"
	"net/http"
	"time"

	"gameforge/middleware"
	"gameforge/models"
	"gameforge/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	ProjectType string `json:"project_type"`
}

func (h *Handlers) CreateProject(c *gin.Context) {
	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ProjectType == "" {
		input.ProjectType = "roblox_game"
	}

	user := middleware.CurrentUser(c)
	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		ProjectType: input.ProjectType,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateProject(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handlers) ListProjects(c *gin.Context) {
	user := middleware.CurrentUser(c)

	projects, err := h.store.ProjectsByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *Handlers) GetProject(c *gin.Context) {
	user := middleware.CurrentUser(c)

	project, err := h.store.Project(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *Handlers) DeleteProject(c *gin.Context) {
	user := middleware.CurrentUser(c)

	err := h.store.DeleteProject(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
