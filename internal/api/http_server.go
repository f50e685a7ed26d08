package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"roster/internal/config"
	"roster/internal/entity"
	"roster/internal/model"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// HTTPHandler serves the user/role management endpoints.
type HTTPHandler struct {
	cfg  config.Config
	repo model.Repository
}

// NewHTTPHandler creates an HTTP handler backed by the given repository.
func NewHTTPHandler(cfg config.Config, repo model.Repository) *HTTPHandler {
	return &HTTPHandler{
		cfg:  cfg,
		repo: repo,
	}
}

// Register mounts all routes under /api plus the health probe.
func (h *HTTPHandler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	users := apiGroup.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUserByID)
	users.GET("/:id/roles", h.GetUserWithRoles)
	users.GET("/name/:name", h.GetUsersByName)
	users.GET("/age/:age", h.GetUsersByAge)
	users.GET("/email/:email", h.GetUserByEmail)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.POST("/:id/roles/:roleId", h.AddUserRole)

	roles := apiGroup.Group("/roles")
	roles.GET("", h.ListRoles)
	roles.GET("/:id", h.GetRoleByID)
	roles.GET("/name/:name", h.GetRoleByName)
	roles.POST("", h.CreateRole)
	roles.PUT("/:id", h.UpdateRole)
	roles.DELETE("/:id", h.DeleteRole)
}

// parseIDParam reads a positive integer path parameter. On failure it writes a
// 400 response and reports false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// validListQuery checks pagination bounds before any store access. Violations
// are rejected, not clamped.
func validListQuery(q *entity.ListQuery) bool {
	return q.Page >= 1 && q.PageSize >= 1 && q.PageSize <= MaxPageSize
}
