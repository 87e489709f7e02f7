package service

import (
	"context"
	"testing"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		repository.NewGrantRepository(db),
	)
}

// registerAndVerify walks a fresh account through the full signup flow.
func registerAndVerify(t *testing.T, svc AuthService, username, email, password string) string {
	t.Helper()
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.VerificationCode)
	require.NoError(t, svc.Verify(ctx, res.VerificationCode))
	return res.ID
}

func TestRegisterAndVerifyFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{
		Username: "priest01",
		Email:    "priest01@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Fresh accounts cannot log in until the code is consumed.
	_, err = svc.Authenticate(ctx, "priest01", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	require.NoError(t, svc.Verify(ctx, res.VerificationCode))

	identity, err := svc.Authenticate(ctx, "priest01", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "priest01", identity.Username)

	// The code is one-time.
	assert.ErrorIs(t, svc.Verify(ctx, res.VerificationCode), ErrInvalidVerifyCode)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "priest01", Email: "priest01@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "priest01", Email: "other@example.com", Password: "secret123"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "other", Email: "priest01@example.com", Password: "secret123"})
	assert.Error(t, err)
}

func TestRegisterAssignsDevoteeRole(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.Role{Name: DevoteeRoleName, IsActive: true, IsSystem: true}).Error)

	svc := newAuthService(t, db)
	registerAndVerify(t, svc, "visitor", "visitor@example.com", "secret123")

	identity, err := svc.Authenticate(context.Background(), "visitor", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []string{DevoteeRoleName}, identity.Roles)
}

func TestAuthenticateCaseInsensitiveLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	registerAndVerify(t, svc, "Priest01", "Priest01@Example.com", "secret123")

	for _, login := range []string{"priest01", "PRIEST01", "priest01@example.com", "PRIEST01@EXAMPLE.COM"} {
		identity, err := svc.Authenticate(ctx, login, "secret123")
		require.NoError(t, err, "login %q", login)
		assert.Equal(t, "Priest01", identity.Username)
	}

	// Case-insensitivity applies to the identifier, never the password.
	_, err := svc.Authenticate(ctx, "priest01", "SECRET123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateDoesNotRevealAccountExistence(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	registerAndVerify(t, svc, "priest01", "priest01@example.com", "secret123")

	_, unknownErr := svc.Authenticate(ctx, "nobody", "secret123")
	_, wrongPwErr := svc.Authenticate(ctx, "priest01", "wrong-password")

	// An unknown identity and a wrong password must be indistinguishable.
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	id := registerAndVerify(t, svc, "priest01", "priest01@example.com", "secret123")

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", id).Update("is_active", false).Error)

	_, err := svc.Authenticate(ctx, "priest01", "secret123")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	registerAndVerify(t, svc, "priest01", "priest01@example.com", "secret123")
	identity, err := svc.Authenticate(ctx, "priest01", "secret123")
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "priest01", profile.Username)
	assert.Equal(t, "priest01@example.com", profile.Email)
	assert.Empty(t, profile.Roles)
}
