package service

import (
	"context"
	"testing"

	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoleService(t *testing.T, db *gorm.DB) RoleService {
	t.Helper()
	return NewRoleService(
		repository.NewRoleRepository(db),
		repository.NewUserRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestSeedDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	// 10 pages x 4 kinds
	perms, err := svc.ListPagePermissions(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, 40)

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 4)

	byName := map[string]RoleResponse{}
	for _, r := range roles {
		assert.True(t, r.IsSystem, "seeded role %s must be a system role", r.Name)
		assert.True(t, r.IsActive)
		byName[r.Name] = r
	}
	require.Contains(t, byName, "Admin")
	require.Contains(t, byName, "Manager")
	require.Contains(t, byName, "Staff")
	require.Contains(t, byName, DevoteeRoleName)

	adminPerms, err := svc.RolePermissions(ctx, byName["Admin"].ID)
	require.NoError(t, err)
	assert.Len(t, adminPerms, 40)

	devoteePerms, err := svc.RolePermissions(ctx, byName[DevoteeRoleName].ID)
	require.NoError(t, err)
	assert.Len(t, devoteePerms, 2) // read events + read poojas
	for _, p := range devoteePerms {
		assert.Equal(t, "Read", p.Permission)
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	perms, err := svc.ListPagePermissions(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, 40)

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 4)
}

func TestDeleteRoleRefusesSystemRoles(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)

	for _, r := range roles {
		if r.Name == "Admin" {
			err = svc.DeleteRole(ctx, r.ID)
			assert.Error(t, err)
		}
	}

	// Custom roles can be deleted.
	custom, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Volunteer", Description: "Event helpers"})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteRole(ctx, custom.ID))
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(t, db)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Volunteer"})
	require.NoError(t, err)

	// Name uniqueness ignores case.
	_, err = svc.CreateRole(ctx, CreateRoleRequest{Name: "volunteer"})
	assert.Error(t, err)
}

func TestUpdateRolePermissionsReplacesSet(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	role, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "Volunteer"})
	require.NoError(t, err)

	perms, err := svc.ListPagePermissions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, perms)

	got, err := svc.UpdateRolePermissions(ctx, role.ID, UpdateRolePermissionsRequest{
		PagePermissionIDs: []string{perms[0].ID, perms[1].ID},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A second update replaces, not appends.
	got, err = svc.UpdateRolePermissions(ctx, role.ID, UpdateRolePermissionsRequest{
		PagePermissionIDs: []string{perms[2].ID},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, perms[2].ID, got[0].ID)
}
