package repository

import (
	"context"
	"testing"

	"backend/internal/auth"
	"backend/internal/database"
	"backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One in-memory database per test; a second connection would see an
	// empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedGrantChain creates user -> user_role -> role -> role_permission ->
// page_permission, all active, and returns the pieces for later toggling.
func seedGrantChain(t *testing.T, db *gorm.DB, pageURL string, kind auth.PermissionKind) (*model.User, *model.Role, *model.UserRole, *model.RolePermission, *model.PagePermission) {
	t.Helper()

	user := &model.User{Username: "grantee", Email: "grantee@example.com", Password: "x", IsActive: true, IsVerified: true}
	require.NoError(t, db.Create(user).Error)

	role := &model.Role{Name: "Keeper", IsActive: true}
	require.NoError(t, db.Create(role).Error)

	link := &model.UserRole{UserID: user.ID, RoleID: role.ID, IsActive: true}
	require.NoError(t, db.Create(link).Error)

	perm := &model.PagePermission{PageName: "Donations", PageURL: pageURL, PermissionKind: kind, IsActive: true}
	require.NoError(t, db.Create(perm).Error)

	rp := &model.RolePermission{RoleID: role.ID, PagePermissionID: perm.ID, IsActive: true}
	require.NoError(t, db.Create(rp).Error)

	return user, role, link, rp, perm
}

func TestHasGrantJoinChain(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrantRepository(db)
	ctx := context.Background()

	user, role, link, rp, perm := seedGrantChain(t, db, "/donations", auth.PermissionRead)

	granted, err := repo.HasGrant(ctx, user.ID, "/donations", auth.PermissionRead)
	require.NoError(t, err)
	assert.True(t, granted)

	// The grant is for Read only.
	granted, err = repo.HasGrant(ctx, user.ID, "/donations", auth.PermissionWrite)
	require.NoError(t, err)
	assert.False(t, granted)

	// And only for the seeded page.
	granted, err = repo.HasGrant(ctx, user.ID, "/inventory", auth.PermissionRead)
	require.NoError(t, err)
	assert.False(t, granted)

	// Deactivating any hop revokes the grant; reactivating restores it.
	toggles := []struct {
		name    string
		disable func()
		enable  func()
	}{
		{
			name:    "user role link",
			disable: func() { require.NoError(t, db.Model(link).Update("is_active", false).Error) },
			enable:  func() { require.NoError(t, db.Model(link).Update("is_active", true).Error) },
		},
		{
			name:    "role",
			disable: func() { require.NoError(t, db.Model(role).Update("is_active", false).Error) },
			enable:  func() { require.NoError(t, db.Model(role).Update("is_active", true).Error) },
		},
		{
			name:    "role permission",
			disable: func() { require.NoError(t, db.Model(rp).Update("is_active", false).Error) },
			enable:  func() { require.NoError(t, db.Model(rp).Update("is_active", true).Error) },
		},
		{
			name:    "page permission",
			disable: func() { require.NoError(t, db.Model(perm).Update("is_active", false).Error) },
			enable:  func() { require.NoError(t, db.Model(perm).Update("is_active", true).Error) },
		},
	}

	for _, tc := range toggles {
		t.Run(tc.name, func(t *testing.T) {
			tc.disable()
			granted, err := repo.HasGrant(ctx, user.ID, "/donations", auth.PermissionRead)
			require.NoError(t, err)
			assert.False(t, granted, "deactivated %s must revoke the grant", tc.name)

			tc.enable()
			granted, err = repo.HasGrant(ctx, user.ID, "/donations", auth.PermissionRead)
			require.NoError(t, err)
			assert.True(t, granted)
		})
	}
}

func TestGrantsForUserDistinct(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrantRepository(db)
	ctx := context.Background()

	user, _, _, _, perm := seedGrantChain(t, db, "/donations", auth.PermissionRead)

	// A second role granting the same page permission must not duplicate the
	// grant row.
	other := &model.Role{Name: "Treasurer", IsActive: true}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&model.UserRole{UserID: user.ID, RoleID: other.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&model.RolePermission{RoleID: other.ID, PagePermissionID: perm.ID, IsActive: true}).Error)

	grants, err := repo.GrantsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, grants, 2) // one per role name, same page+kind

	pages := map[string]bool{}
	for _, g := range grants {
		assert.Equal(t, "/donations", g.PageURL)
		assert.Equal(t, auth.PermissionRead, g.PermissionKind)
		pages[g.RoleName] = true
	}
	assert.Len(t, pages, 2)
}

func TestRoleNamesForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrantRepository(db)
	ctx := context.Background()

	user, role, link, _, _ := seedGrantChain(t, db, "/events", auth.PermissionRead)

	names, err := repo.RoleNamesForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{role.Name}, names)

	require.NoError(t, db.Model(link).Update("is_active", false).Error)
	names, err = repo.RoleNamesForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRoleNamesForUserWithoutRoles(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrantRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "lonely", Email: "lonely@example.com", Password: "x", IsActive: true, IsVerified: true}
	require.NoError(t, db.Create(user).Error)

	names, err := repo.RoleNamesForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, names)

	grants, err := repo.GrantsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, grants)
}
