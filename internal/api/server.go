// Package api exposes the todo and category services over the REST contract
// the taskmaster client synchronizes with.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"taskmaster/internal/services"
)

// Server is the taskmaster REST server
type Server struct {
	todos      services.TodoService
	categories services.CategoryService
	logger     *log.Logger
	router     *gin.Engine
}

// NewServer wires the routes for the given services
func NewServer(todos services.TodoService, categories services.CategoryService, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		todos:      todos,
		categories: categories,
		logger:     logger,
		router:     router,
	}

	router.Use(gin.Recovery(), s.requestLogger(), cors())

	router.GET("/todos", s.handleListTodos)
	router.POST("/todos", s.handleCreateTodo)
	router.GET("/todos/:id", s.handleGetTodo)
	router.PUT("/todos/:id", s.handleUpdateTodo)
	router.DELETE("/todos/:id", s.handleDeleteTodo)

	router.GET("/categories", s.handleListCategories)
	router.POST("/categories", s.handleCreateCategory)
	router.DELETE("/categories/:id", s.handleDeleteCategory)

	return s
}

// Handler returns the router for use in an http.Server or httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// cors allows any origin to call the API. Preflight requests end here with 200.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", fields...)
			return
		}
		s.logger.Info("request", fields...)
	}
}
