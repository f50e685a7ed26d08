package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"roster/internal/entity"
)

// ListUsers returns one page of users plus the total row count.
func (r *GormRepository) ListUsers(ctx context.Context, q *entity.ListQuery) ([]entity.DbUser, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repository not initialised")
	}

	page := 1
	pageSize := 10
	sortBy := ""
	descending := false
	if q != nil {
		if q.Page > 0 {
			page = q.Page
		}
		if q.PageSize > 0 {
			pageSize = q.PageSize
		}
		sortBy = q.SortBy
		descending = q.Descending
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.DbUser
	query := applyOrder(r.db.WithContext(ctx).Model(&entity.DbUser{}), userSortColumn(sortBy), descending)
	if err := query.Offset(pageOffset(page, pageSize)).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetUserByID loads a user by id.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByName loads all users with the given name.
func (r *GormRepository) GetUsersByName(ctx context.Context, name string) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUsersByAge loads all users with the given age.
func (r *GormRepository) GetUsersByAge(ctx context.Context, age int) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Where("age = ?", age).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByEmail loads a user by email, trimmed and case-insensitive.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	key := normalizeKey(email)
	if key == "" {
		return nil, fmt.Errorf("email is empty")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(TRIM(email)) = ?", key).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithRoles loads a user together with its roles resolved through the
// association table. The role list may be empty.
func (r *GormRepository) GetUserWithRoles(ctx context.Context, id uint) (*entity.DbUser, []entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, nil, fmt.Errorf("invalid user id")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, nil, err
	}

	var roles []entity.DbRole
	err := r.db.WithContext(ctx).
		Model(&entity.DbRole{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", id).
		Order("roles.id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, nil, err
	}

	return &user, roles, nil
}

// UserExistsByID reports whether a user row exists.
func (r *GormRepository) UserExistsByID(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailTaken reports whether another user already holds the email. The scan
// trims and lower-cases both sides; excludeID skips the row being updated
// (zero means no exclusion).
func (r *GormRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	key := normalizeKey(email)
	if key == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("LOWER(TRIM(email)) = ?", key)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts a user and its first role association as one
// transaction. Nothing is written when the role does not exist.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser, roleID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role entity.DbRole
		if err := tx.First(&role, roleID).Error; err != nil {
			return fmt.Errorf("role %d: %w", roleID, err)
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&entity.DbUserRole{UserID: user.ID, RoleID: roleID}).Error
	})
}

// UpdateUser replaces the mutable fields of a user by id. Zero rows affected
// counts as failure.
func (r *GormRepository) UpdateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil || user.ID == 0 {
		return fmt.Errorf("invalid user")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":  user.Name,
		"age":   user.Age,
		"email": user.Email,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUser removes a user and its role associations transactionally.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entity.DbUserRole{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbUser{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddUserRole links an existing user to an existing role.
func (r *GormRepository) AddUserRole(ctx context.Context, userID, roleID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 || roleID == 0 {
		return fmt.Errorf("invalid association")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role entity.DbRole
		if err := tx.First(&role, roleID).Error; err != nil {
			return fmt.Errorf("role %d: %w", roleID, err)
		}
		var user entity.DbUser
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("user %d: %w", userID, err)
		}
		return tx.Create(&entity.DbUserRole{UserID: userID, RoleID: roleID}).Error
	})
}

// UserHasRole reports whether the association pair already exists.
func (r *GormRepository) UserHasRole(ctx context.Context, userID, roleID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.DbUserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUserRoles returns the number of association rows.
func (r *GormRepository) CountUserRoles(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUserRole{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
