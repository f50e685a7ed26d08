package model

import (
	"context"

	"roster/internal/entity"
)

// Repository defines the store operations for users, roles and their
// associations. Implementations must be safe for concurrent use; every
// operation honours the caller's context.
//
// Missing rows are reported with gorm.ErrRecordNotFound so callers can map
// them to not-found outcomes. Uniqueness of emails and role names is not a
// store constraint: the *Taken scans are the precondition checks and compare
// trimmed values case-insensitively.
type Repository interface {
	// Users
	ListUsers(ctx context.Context, q *entity.ListQuery) ([]entity.DbUser, int64, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUsersByName(ctx context.Context, name string) ([]entity.DbUser, error)
	GetUsersByAge(ctx context.Context, age int) ([]entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserWithRoles(ctx context.Context, id uint) (*entity.DbUser, []entity.DbRole, error)
	UserExistsByID(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	CreateUser(ctx context.Context, user *entity.DbUser, roleID uint) error
	UpdateUser(ctx context.Context, user *entity.DbUser) error
	DeleteUser(ctx context.Context, id uint) error
	AddUserRole(ctx context.Context, userID, roleID uint) error
	UserHasRole(ctx context.Context, userID, roleID uint) (bool, error)
	CountUserRoles(ctx context.Context) (int64, error)

	// Roles
	ListRoles(ctx context.Context, q *entity.ListQuery) ([]entity.DbRole, int64, error)
	GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error)
	GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error)
	RoleExistsByID(ctx context.Context, id uint) (bool, error)
	RoleNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	CreateRole(ctx context.Context, role *entity.DbRole) error
	UpdateRole(ctx context.Context, role *entity.DbRole) error
	DeleteRole(ctx context.Context, id uint) error
}
