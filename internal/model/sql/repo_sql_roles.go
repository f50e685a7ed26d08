package sql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"roster/internal/entity"
)

// ListRoles returns one page of roles plus the total row count.
func (r *GormRepository) ListRoles(ctx context.Context, q *entity.ListQuery) ([]entity.DbRole, int64, error) {
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
	if err := r.db.WithContext(ctx).Model(&entity.DbRole{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []entity.DbRole
	query := applyOrder(r.db.WithContext(ctx).Model(&entity.DbRole{}), roleSortColumn(sortBy), descending)
	if err := query.Offset(pageOffset(page, pageSize)).Limit(pageSize).Find(&roles).Error; err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// GetRoleByID loads a role by id.
func (r *GormRepository) GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	var role entity.DbRole
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByName loads a role by name, trimmed and case-insensitive.
func (r *GormRepository) GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	key := normalizeKey(name)
	if key == "" {
		return nil, fmt.Errorf("role name is empty")
	}
	var role entity.DbRole
	if err := r.db.WithContext(ctx).Where("LOWER(TRIM(name)) = ?", key).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleExistsByID reports whether a role row exists.
func (r *GormRepository) RoleExistsByID(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RoleNameTaken reports whether another role already holds the name. The scan
// trims and lower-cases both sides; excludeID skips the row being updated.
func (r *GormRepository) RoleNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	key := normalizeKey(name)
	if key == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("LOWER(TRIM(name)) = ?", key)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRole inserts a new role.
func (r *GormRepository) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil {
		return fmt.Errorf("role is nil")
	}
	return r.db.WithContext(ctx).Create(role).Error
}

// UpdateRole replaces the mutable fields of a role by id. Zero rows affected
// counts as failure.
func (r *GormRepository) UpdateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil || role.ID == 0 {
		return fmt.Errorf("invalid role")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbRole{}).Where("id = ?", role.ID).Updates(map[string]interface{}{
		"name": role.Name,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRole removes a role and its user associations transactionally.
func (r *GormRepository) DeleteRole(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid role id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&entity.DbUserRole{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbRole{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
