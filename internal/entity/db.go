package entity

import "time"

// DbUser represents a persisted user account.
//
// Email uniqueness is deliberately not a store constraint: it is enforced by a
// precondition scan in the API layer (see Repository.EmailTaken), so the column
// carries only a plain index.
type DbUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Age       int       `gorm:"column:age;not null" json:"age"`
	Email     string    `gorm:"column:email;type:varchar(255);index;not null" json:"email"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// DbRole represents a persisted role. Name uniqueness is enforced by
// precondition scan, same as user emails.
type DbRole struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(255);index;not null" json:"name"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "roles"
}

// DbUserRole is the many-to-many association between users and roles. It is a
// pure link record keyed by the pair and carries no attributes of its own.
type DbUserRole struct {
	UserID uint `gorm:"column:user_id;primaryKey" json:"user_id"`
	RoleID uint `gorm:"column:role_id;primaryKey" json:"role_id"`
}

// TableName overrides default pluralised name.
func (DbUserRole) TableName() string {
	return "user_roles"
}
