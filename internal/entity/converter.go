package entity

import "strings"

// UserToDTO converts a DbUser to its wire shape.
func UserToDTO(u *DbUser) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Age:   u.Age,
		Email: u.Email,
	}
}

// UsersToDTOs converts a slice of DbUser to wire shapes. Always returns a
// non-nil slice.
func UsersToDTOs(users []DbUser) []UserDTO {
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = UserToDTO(&users[i])
	}
	return out
}

// RoleToDTO converts a DbRole to its wire shape.
func RoleToDTO(r *DbRole) RoleDTO {
	if r == nil {
		return RoleDTO{}
	}
	return RoleDTO{
		ID:   r.ID,
		Name: r.Name,
	}
}

// RolesToDTOs converts a slice of DbRole to wire shapes. Always returns a
// non-nil slice.
func RolesToDTOs(roles []DbRole) []RoleDTO {
	out := make([]RoleDTO, len(roles))
	for i := range roles {
		out[i] = RoleToDTO(&roles[i])
	}
	return out
}

// UserWithRoles builds the derived user view, flattening each association into
// a {roleId, roleName} pair.
func UserWithRoles(u *DbUser, roles []DbRole) UserWithRolesDTO {
	view := UserWithRolesDTO{
		Roles: make([]UserRoleItem, 0, len(roles)),
	}
	if u != nil {
		view.ID = u.ID
		view.Name = u.Name
		view.Age = u.Age
		view.Email = u.Email
	}
	for i := range roles {
		view.Roles = append(view.Roles, UserRoleItem{
			RoleID:   roles[i].ID,
			RoleName: roles[i].Name,
		})
	}
	return view
}

// UserFromRequest maps a request payload onto a fresh DbUser. Name and email
// are stored trimmed; the store generates the id.
func UserFromRequest(req UserRequest) DbUser {
	return DbUser{
		Name:  strings.TrimSpace(req.Name),
		Age:   req.Age,
		Email: strings.TrimSpace(req.Email),
	}
}

// RoleFromRequest maps a request payload onto a fresh DbRole.
func RoleFromRequest(req RoleRequest) DbRole {
	return DbRole{
		Name: strings.TrimSpace(req.Name),
	}
}
