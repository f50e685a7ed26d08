package entity

// ListQuery carries pagination and sorting parameters shared by the user and
// role listings. Validation of the ranges happens at the API layer before any
// store access.
type ListQuery struct {
	Page       int    `json:"page" form:"page,default=1"`
	PageSize   int    `json:"pageSize" form:"pageSize,default=10"`
	SortBy     string `json:"sortBy" form:"sortBy"`
	Descending bool   `json:"descending" form:"descending"`
}

// UserDTO is the wire shape of a user.
type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// RoleDTO is the wire shape of a role.
type RoleDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserRoleItem is one flattened association entry in the user-with-roles view.
type UserRoleItem struct {
	RoleID   uint   `json:"roleId"`
	RoleName string `json:"roleName"`
}

// UserWithRolesDTO is a user together with its resolved roles. Roles is a
// list, empty when the user holds none, never null.
type UserWithRolesDTO struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Age   int            `json:"age"`
	Email string         `json:"email"`
	Roles []UserRoleItem `json:"roles"`
}

// UserRequest is the payload for creating or updating a user. ID is ignored on
// create and must match the path id on update.
type UserRequest struct {
	ID    uint   `json:"id"`
	Name  string `json:"name" binding:"required"`
	Age   int    `json:"age" binding:"required,gte=1,lte=120"`
	Email string `json:"email" binding:"required,email"`
}

// RoleRequest is the payload for creating or updating a role.
type RoleRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name" binding:"required"`
}

// UserListResponse is the paginated response for listing users.
type UserListResponse struct {
	Data       []UserDTO `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalCount int64     `json:"totalCount"`
}

// RoleListResponse is the paginated response for listing roles.
type RoleListResponse struct {
	Data       []RoleDTO `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalCount int64     `json:"totalCount"`
}
