package model

import (
	"context"

	"roster/internal/config"
	"roster/internal/entity"
)

type demoSeed struct {
	User entity.DbUser
	Role entity.DbRole
}

// SeedDemoData inserts a small demo data set on first start. It is a no-op
// when seeding is disabled or any association already exists.
func SeedDemoData(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil || !cfg.SeedData {
		return nil
	}

	count, err := repo.CountUserRoles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []demoSeed{
		{
			User: entity.DbUser{Name: "TestUser", Age: 1, Email: "test_user@test.com"},
			Role: entity.DbRole{Name: "User"},
		},
		{
			User: entity.DbUser{Name: "TestAdmin", Age: 1, Email: "test_admin@test.com"},
			Role: entity.DbRole{Name: "Admin"},
		},
		{
			User: entity.DbUser{Name: "TestSupport", Age: 1, Email: "test_support@test.com"},
			Role: entity.DbRole{Name: "Support"},
		},
		{
			User: entity.DbUser{Name: "TestSuperAdmin", Age: 1, Email: "test_superAdmin@test.com"},
			Role: entity.DbRole{Name: "SuperAdmin"},
		},
	}

	for _, seed := range seeds {
		role := seed.Role
		if err := repo.CreateRole(ctx, &role); err != nil {
			return err
		}
		user := seed.User
		if err := repo.CreateUser(ctx, &user, role.ID); err != nil {
			return err
		}
	}
	return nil
}
