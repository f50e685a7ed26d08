package sql

import (
	"strings"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// userSortColumn maps a requested sort field to a users column. Unrecognised
// fields fall back to id.
func userSortColumn(sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "name":
		return "name"
	case "age":
		return "age"
	case "email":
		return "email"
	default:
		return "id"
	}
}

// roleSortColumn maps a requested sort field to a roles column. Unrecognised
// fields fall back to id.
func roleSortColumn(sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "name":
		return "name"
	default:
		return "id"
	}
}

// applyOrder adds the requested ordering plus an id tie-break so pages stay
// deterministic when the sort column holds duplicates.
func applyOrder(query *gorm.DB, column string, descending bool) *gorm.DB {
	direction := " ASC"
	if descending {
		direction = " DESC"
	}
	query = query.Order(column + direction)
	if column != "id" {
		query = query.Order("id ASC")
	}
	return query
}

// pageOffset converts 1-indexed pagination to a row offset.
func pageOffset(page, pageSize int) int {
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return offset
}

// normalizeKey prepares an email or role name for a uniqueness scan.
func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
