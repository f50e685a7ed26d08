package api

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"roster/internal/entity"
)

// fakeRepo is an in-memory Repository used by the handler tests. It mirrors
// the store semantics of the GORM implementation, including the
// trimmed/case-insensitive uniqueness scans, and counts every call so tests
// can assert that rejected requests never touch the store.
type fakeRepo struct {
	mu sync.Mutex

	users     []entity.DbUser
	roles     []entity.DbRole
	userRoles []entity.DbUserRole

	nextUserID uint
	nextRoleID uint

	calls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextUserID: 1, nextRoleID: 1}
}

func (f *fakeRepo) track() {
	f.calls++
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (f *fakeRepo) seedRole(name string) entity.DbRole {
	f.mu.Lock()
	defer f.mu.Unlock()
	role := entity.DbRole{ID: f.nextRoleID, Name: name}
	f.nextRoleID++
	f.roles = append(f.roles, role)
	return role
}

func (f *fakeRepo) seedUser(name string, age int, email string) entity.DbUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := entity.DbUser{ID: f.nextUserID, Name: name, Age: age, Email: email}
	f.nextUserID++
	f.users = append(f.users, user)
	return user
}

func (f *fakeRepo) seedAssociation(userID, roleID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userRoles = append(f.userRoles, entity.DbUserRole{UserID: userID, RoleID: roleID})
}

func (f *fakeRepo) ListUsers(_ context.Context, q *entity.ListQuery) ([]entity.DbUser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()

	users := make([]entity.DbUser, len(f.users))
	copy(users, f.users)
	sortUsersFake(users, q)

	total := int64(len(users))
	page, pageSize := pageBounds(q)
	start := (page - 1) * pageSize
	if start > len(users) {
		start = len(users)
	}
	end := start + pageSize
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], total, nil
}

func sortUsersFake(users []entity.DbUser, q *entity.ListQuery) {
	column := "id"
	descending := false
	if q != nil {
		descending = q.Descending
		switch normalize(q.SortBy) {
		case "name", "age", "email":
			column = normalize(q.SortBy)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		var less bool
		switch column {
		case "name":
			if users[i].Name != users[j].Name {
				less = users[i].Name < users[j].Name
			} else {
				return users[i].ID < users[j].ID
			}
		case "age":
			if users[i].Age != users[j].Age {
				less = users[i].Age < users[j].Age
			} else {
				return users[i].ID < users[j].ID
			}
		case "email":
			if users[i].Email != users[j].Email {
				less = users[i].Email < users[j].Email
			} else {
				return users[i].ID < users[j].ID
			}
		default:
			less = users[i].ID < users[j].ID
		}
		if descending {
			return !less
		}
		return less
	})
}

func pageBounds(q *entity.ListQuery) (int, int) {
	page, pageSize := 1, 10
	if q != nil {
		if q.Page > 0 {
			page = q.Page
		}
		if q.PageSize > 0 {
			pageSize = q.PageSize
		}
	}
	return page, pageSize
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUsersByName(_ context.Context, name string) ([]entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	var out []entity.DbUser
	for _, u := range f.users {
		if u.Name == strings.TrimSpace(name) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetUsersByAge(_ context.Context, age int) ([]entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	var out []entity.DbUser
	for _, u := range f.users {
		if u.Age == age {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	key := normalize(email)
	for i := range f.users {
		if normalize(f.users[i].Email) == key {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserWithRoles(_ context.Context, id uint) (*entity.DbUser, []entity.DbRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	var user *entity.DbUser
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			user = &u
			break
		}
	}
	if user == nil {
		return nil, nil, gorm.ErrRecordNotFound
	}
	roles := make([]entity.DbRole, 0)
	for _, ur := range f.userRoles {
		if ur.UserID != id {
			continue
		}
		for _, r := range f.roles {
			if r.ID == ur.RoleID {
				roles = append(roles, r)
			}
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return user, roles, nil
}

func (f *fakeRepo) UserExistsByID(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for _, u := range f.users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	key := normalize(email)
	for _, u := range f.users {
		if excludeID > 0 && u.ID == excludeID {
			continue
		}
		if normalize(u.Email) == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser, roleID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	if !f.roleExistsLocked(roleID) {
		return gorm.ErrRecordNotFound
	}
	user.ID = f.nextUserID
	f.nextUserID++
	f.users = append(f.users, *user)
	f.userRoles = append(f.userRoles, entity.DbUserRole{UserID: user.ID, RoleID: roleID})
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, user *entity.DbUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i].Name = user.Name
			f.users[i].Age = user.Age
			f.users[i].Email = user.Email
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			kept := f.userRoles[:0]
			for _, ur := range f.userRoles {
				if ur.UserID != id {
					kept = append(kept, ur)
				}
			}
			f.userRoles = kept
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) AddUserRole(_ context.Context, userID, roleID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	if !f.roleExistsLocked(roleID) {
		return gorm.ErrRecordNotFound
	}
	f.userRoles = append(f.userRoles, entity.DbUserRole{UserID: userID, RoleID: roleID})
	return nil
}

func (f *fakeRepo) UserHasRole(_ context.Context, userID, roleID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for _, ur := range f.userRoles {
		if ur.UserID == userID && ur.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountUserRoles(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	return int64(len(f.userRoles)), nil
}

func (f *fakeRepo) ListRoles(_ context.Context, q *entity.ListQuery) ([]entity.DbRole, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()

	roles := make([]entity.DbRole, len(f.roles))
	copy(roles, f.roles)
	sortRolesFake(roles, q)

	total := int64(len(roles))
	page, pageSize := pageBounds(q)
	start := (page - 1) * pageSize
	if start > len(roles) {
		start = len(roles)
	}
	end := start + pageSize
	if end > len(roles) {
		end = len(roles)
	}
	return roles[start:end], total, nil
}

func sortRolesFake(roles []entity.DbRole, q *entity.ListQuery) {
	column := "id"
	descending := false
	if q != nil {
		descending = q.Descending
		if normalize(q.SortBy) == "name" {
			column = "name"
		}
	}
	sort.SliceStable(roles, func(i, j int) bool {
		var less bool
		if column == "name" {
			if roles[i].Name != roles[j].Name {
				less = roles[i].Name < roles[j].Name
			} else {
				return roles[i].ID < roles[j].ID
			}
		} else {
			less = roles[i].ID < roles[j].ID
		}
		if descending {
			return !less
		}
		return less
	})
}

func (f *fakeRepo) GetRoleByID(_ context.Context, id uint) (*entity.DbRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.roles {
		if f.roles[i].ID == id {
			role := f.roles[i]
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoleByName(_ context.Context, name string) (*entity.DbRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	key := normalize(name)
	for i := range f.roles {
		if normalize(f.roles[i].Name) == key {
			role := f.roles[i]
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) RoleExistsByID(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	return f.roleExistsLocked(id), nil
}

func (f *fakeRepo) roleExistsLocked(id uint) bool {
	for _, r := range f.roles {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeRepo) RoleNameTaken(_ context.Context, name string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	key := normalize(name)
	for _, r := range f.roles {
		if excludeID > 0 && r.ID == excludeID {
			continue
		}
		if normalize(r.Name) == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateRole(_ context.Context, role *entity.DbRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	role.ID = f.nextRoleID
	f.nextRoleID++
	f.roles = append(f.roles, *role)
	return nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, role *entity.DbRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.roles {
		if f.roles[i].ID == role.ID {
			f.roles[i].Name = role.Name
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteRole(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track()
	for i := range f.roles {
		if f.roles[i].ID == id {
			f.roles = append(f.roles[:i], f.roles[i+1:]...)
			kept := f.userRoles[:0]
			for _, ur := range f.userRoles {
				if ur.RoleID != id {
					kept = append(kept, ur)
				}
			}
			f.userRoles = kept
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
