package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roster/internal/entity"
)

func (h *HTTPHandler) ListRoles(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	var query entity.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if !validListQuery(&query) {
		BadRequest(c, ErrCodeInvalidPagination, "invalid pagination parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	roles, total, err := h.repo.ListRoles(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list roles")
		InternalError(c, "failed to load roles")
		return
	}

	c.JSON(http.StatusOK, entity.RoleListResponse{
		Data:       entity.RolesToDTOs(roles),
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
	})
}

func (h *HTTPHandler) GetRoleByID(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to load role")
		InternalError(c, "failed to load role")
		return
	}

	c.JSON(http.StatusOK, entity.RoleToDTO(role))
}

func (h *HTTPHandler) GetRoleByName(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.repo.GetRoleByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).WithField("name", name).Error("failed to load role by name")
		InternalError(c, "failed to load role")
		return
	}

	c.JSON(http.StatusOK, entity.RoleToDTO(role))
}

func (h *HTTPHandler) CreateRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	var req entity.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taken, err := h.repo.RoleNameTaken(ctx, req.Name, 0)
	if err != nil {
		logrus.WithError(err).Error("failed to check role name uniqueness")
		InternalError(c, "failed to create role")
		return
	}
	if taken {
		UnprocessableEntity(c, ErrCodeRoleNameExists, "role name already exists")
		return
	}

	role := entity.RoleFromRequest(req)
	if err := h.repo.CreateRole(ctx, &role); err != nil {
		logrus.WithError(err).Error("failed to create role")
		InternalError(c, "failed to create role")
		return
	}

	c.JSON(http.StatusCreated, entity.RoleToDTO(&role))
}

func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if req.ID != id {
		BadRequest(c, ErrCodeIDMismatch, "path id does not match body id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.repo.RoleExistsByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to check role existence")
		InternalError(c, "failed to update role")
		return
	}
	if !exists {
		NotFound(c, ErrCodeRoleNotFound, "role not found")
		return
	}

	// The row being updated may keep its own name.
	taken, err := h.repo.RoleNameTaken(ctx, req.Name, id)
	if err != nil {
		logrus.WithError(err).Error("failed to check role name uniqueness")
		InternalError(c, "failed to update role")
		return
	}
	if taken {
		UnprocessableEntity(c, ErrCodeRoleNameExists, "role name already exists")
		return
	}

	role := entity.RoleFromRequest(req)
	role.ID = id
	if err := h.repo.UpdateRole(ctx, &role); err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to update role")
		InternalError(c, "something went wrong updating role")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "role repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.repo.RoleExistsByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to check role existence")
		InternalError(c, "failed to delete role")
		return
	}
	if !exists {
		NotFound(c, ErrCodeRoleNotFound, "role not found")
		return
	}

	if err := h.repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to delete role")
		InternalError(c, "something went wrong deleting role")
		return
	}

	c.Status(http.StatusNoContent)
}
