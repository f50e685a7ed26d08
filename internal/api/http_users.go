package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roster/internal/entity"
)

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
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

	users, total, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "failed to load users")
		return
	}

	c.JSON(http.StatusOK, entity.UserListResponse{
		Data:       entity.UsersToDTOs(users),
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
	})
}

func (h *HTTPHandler) GetUserByID(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to load user")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, entity.UserToDTO(user))
}

func (h *HTTPHandler) GetUserWithRoles(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, roles, err := h.repo.GetUserWithRoles(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to load user roles")
		InternalError(c, "failed to load user roles")
		return
	}

	c.JSON(http.StatusOK, entity.UserWithRoles(user, roles))
}

func (h *HTTPHandler) GetUsersByName(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.GetUsersByName(ctx, name)
	if err != nil {
		logrus.WithError(err).WithField("name", name).Error("failed to load users by name")
		InternalError(c, "failed to load users")
		return
	}

	c.JSON(http.StatusOK, entity.UsersToDTOs(users))
}

func (h *HTTPHandler) GetUsersByAge(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	age, err := strconv.Atoi(strings.TrimSpace(c.Param("age")))
	if err != nil || age < 1 || age > 120 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid age")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.GetUsersByAge(ctx, age)
	if err != nil {
		logrus.WithError(err).WithField("age", age).Error("failed to load users by age")
		InternalError(c, "failed to load users")
		return
	}

	c.JSON(http.StatusOK, entity.UsersToDTOs(users))
}

func (h *HTTPHandler) GetUserByEmail(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		MissingField(c, "email")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to load user by email")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, entity.UserToDTO(user))
}

func (h *HTTPHandler) CreateUser(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	rawRoleID := strings.TrimSpace(c.Query("roleId"))
	if rawRoleID == "" {
		MissingField(c, "roleId")
		return
	}
	roleID, err := strconv.ParseUint(rawRoleID, 10, 64)
	if err != nil || roleID == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid roleId")
		return
	}

	var req entity.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Uniqueness precondition: no store constraint backs this, so the scan
	// must run right before the write.
	taken, err := h.repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		logrus.WithError(err).Error("failed to check email uniqueness")
		InternalError(c, "failed to create user")
		return
	}
	if taken {
		UnprocessableEntity(c, ErrCodeEmailExists, "email is not unique")
		return
	}

	exists, err := h.repo.RoleExistsByID(ctx, uint(roleID))
	if err != nil {
		logrus.WithError(err).Error("failed to check role existence")
		InternalError(c, "failed to create user")
		return
	}
	if !exists {
		NotFound(c, ErrCodeRoleNotFound, "role not found")
		return
	}

	user := entity.UserFromRequest(req)
	if err := h.repo.CreateUser(ctx, &user, uint(roleID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "something went wrong while saving")
		return
	}

	c.JSON(http.StatusCreated, entity.UserToDTO(&user))
}

func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UserRequest
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

	exists, err := h.repo.UserExistsByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to check user existence")
		InternalError(c, "failed to update user")
		return
	}
	if !exists {
		NotFound(c, ErrCodeUserNotFound, "user not found")
		return
	}

	// The row being updated may keep its own email.
	taken, err := h.repo.EmailTaken(ctx, req.Email, id)
	if err != nil {
		logrus.WithError(err).Error("failed to check email uniqueness")
		InternalError(c, "failed to update user")
		return
	}
	if taken {
		UnprocessableEntity(c, ErrCodeEmailExists, "email is not unique")
		return
	}

	user := entity.UserFromRequest(req)
	user.ID = id
	if err := h.repo.UpdateUser(ctx, &user); err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to update user")
		InternalError(c, "something went wrong updating user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.repo.UserExistsByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("failed to check user existence")
		InternalError(c, "failed to delete user")
		return
	}
	if !exists {
		NotFound(c, ErrCodeUserNotFound, "user not found")
		return
	}

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("id", id).Error("failed to delete user")
		InternalError(c, "something went wrong deleting user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) AddUserRole(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roleID, ok := parseIDParam(c, "roleId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userExists, err := h.repo.UserExistsByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("id", userID).Error("failed to check user existence")
		InternalError(c, "failed to add role")
		return
	}
	if !userExists {
		NotFound(c, ErrCodeUserNotFound, "user not found")
		return
	}

	roleExists, err := h.repo.RoleExistsByID(ctx, roleID)
	if err != nil {
		logrus.WithError(err).WithField("id", roleID).Error("failed to check role existence")
		InternalError(c, "failed to add role")
		return
	}
	if !roleExists {
		NotFound(c, ErrCodeRoleNotFound, "role not found")
		return
	}

	assigned, err := h.repo.UserHasRole(ctx, userID, roleID)
	if err != nil {
		logrus.WithError(err).Error("failed to check role assignment")
		InternalError(c, "failed to add role")
		return
	}
	if assigned {
		UnprocessableEntity(c, ErrCodeRoleAlreadyAssigned, "role already assigned to user")
		return
	}

	if err := h.repo.AddUserRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRoleNotFound, "role not found")
			return
		}
		logrus.WithError(err).Error("failed to add role")
		InternalError(c, "something went wrong adding role")
		return
	}

	c.Status(http.StatusNoContent)
}
