package service

import (
	"context"
	"testing"

	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
	)
}

func TestEnsureAdminUser(t *testing.T) {
	db := newTestDB(t)
	roleSvc := newRoleService(t, db)
	userSvc := newUserService(t, db)
	authSvc := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, roleSvc.SeedDefaults(ctx))
	require.NoError(t, userSvc.EnsureAdminUser(ctx, "admin", "admin@example.com", "changeme1"))

	identity, err := authSvc.Authenticate(ctx, "admin", "changeme1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, identity.Roles)

	// Running the bootstrap again must not fail or duplicate the account.
	require.NoError(t, userSvc.EnsureAdminUser(ctx, "admin", "admin@example.com", "changeme1"))
	_, total, err := userSvc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestEnsureAdminUserSkipsWhenUnconfigured(t *testing.T) {
	db := newTestDB(t)
	userSvc := newUserService(t, db)
	ctx := context.Background()

	require.NoError(t, userSvc.EnsureAdminUser(ctx, "", "", ""))

	_, total, err := userSvc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCreateUserIsActiveAndVerified(t *testing.T) {
	db := newTestDB(t)
	roleSvc := newRoleService(t, db)
	userSvc := newUserService(t, db)
	authSvc := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, roleSvc.SeedDefaults(ctx))

	_, err := userSvc.CreateUser(ctx, CreateUserRequest{
		Username: "staff01",
		Email:    "staff01@example.com",
		Password: "secret123",
		Role:     "Staff",
	})
	require.NoError(t, err)

	// Admin-created accounts skip the verification flow entirely.
	identity, err := authSvc.Authenticate(ctx, "staff01", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []string{"Staff"}, identity.Roles)
}

func TestDeactivateUserBlocksLogin(t *testing.T) {
	db := newTestDB(t)
	roleSvc := newRoleService(t, db)
	userSvc := newUserService(t, db)
	authSvc := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, roleSvc.SeedDefaults(ctx))

	created, err := userSvc.CreateUser(ctx, CreateUserRequest{
		Username: "staff01",
		Email:    "staff01@example.com",
		Password: "secret123",
		Role:     "Staff",
	})
	require.NoError(t, err)

	require.NoError(t, userSvc.DeactivateUser(ctx, created.ID))

	_, err = authSvc.Authenticate(ctx, "staff01", "secret123")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}
