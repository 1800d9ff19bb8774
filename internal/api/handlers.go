package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
)

func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError && errors.ShouldLogError(err) {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"error": errors.GetUserMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

// Todo handlers

func (s *Server) handleListTodos(c *gin.Context) {
	todos, err := s.todos.ListTodos(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) handleGetTodo(c *gin.Context) {
	todo, err := s.todos.GetTodo(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var todo domain.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.todos.CreateTodo(c.Request.Context(), todo)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	var todo domain.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.todos.UpdateTodo(c.Request.Context(), c.Param("id"), todo)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	if err := s.todos.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Category handlers

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.categories.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.categories.CreateCategory(c.Request.Context(), category)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	if err := s.categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
