package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/steps"
	"github.com/sant0-9/todoai/internal/todo"
)

func RegisterRoutes(router *gin.Engine, s *Server) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", s.metrics.handler())

	api := router.Group("/api")
	api.POST("/ai/help", RateLimitMiddleware(s.cfg.Server.AIRate), s.aiHelp)

	api.GET("/categories", s.listCategories)
	api.POST("/categories", s.createCategory)
	api.DELETE("/categories/:id", s.deleteCategory)

	api.GET("/todos", s.listTodos)
	api.POST("/todos", s.createTodo)
	api.PATCH("/todos/:id/toggle", s.toggleTodo)
	api.DELETE("/todos/:id", s.deleteTodo)
}

type helpRequest struct {
	Task string `json:"task"`
}

type helpResponse struct {
	Explanation string     `json:"explanation"`
	Steps       steps.List `json:"steps"`
}

func (s *Server) aiHelp(c *gin.Context) {
	var req helpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.observeAIHelp(outcomeInvalid, 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": assist.MessageTaskRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout())
	defer cancel()

	start := time.Now()
	plan, err := s.planner.Plan(ctx, req.Task)
	if err != nil {
		status, outcome := http.StatusInternalServerError, outcomeFailed
		if assist.IsValidation(err) {
			status, outcome = http.StatusBadRequest, outcomeInvalid
		}
		s.metrics.observeAIHelp(outcome, time.Since(start))
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": assist.UserMessage(err)})
		return
	}
	s.metrics.observeAIHelp(outcomeOK, time.Since(start))

	list := plan.Steps
	if list == nil {
		list = steps.List{}
	}
	c.JSON(http.StatusOK, helpResponse{Explanation: plan.Text, Steps: list})
}

func (s *Server) listCategories(c *gin.Context) {
	if err := s.store.Refresh(); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Categories())
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cat, err := s.store.AddCategory(req.Name)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.store.DeleteCategory(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listTodos(c *gin.Context) {
	if err := s.store.Refresh(); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Todos())
}

type createTodoRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
	DueDate    string `json:"dueDate" binding:"required"`
}

func (s *Server) createTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	due, err := parseDue(req.DueDate)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	t, err := s.store.CreateTodo(todo.NewTodo{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		DueDate:    due,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) toggleTodo(c *gin.Context) {
	t, err := s.store.ToggleTodo(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTodo(c *gin.Context) {
	if err := s.store.DeleteTodo(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseDue accepts a plain date or a full RFC 3339 timestamp.
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return todo.ParseDueDate(s)
}

func writeStoreError(c *gin.Context, err error) {
	var vErr *todo.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, todo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, todo.ErrCategoryInUse), errors.Is(err, todo.ErrDuplicateCategory):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
