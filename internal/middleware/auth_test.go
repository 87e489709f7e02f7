package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/auth"
	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

// seedUserWithGrant creates an active verified account holding a single
// (Read, /donations) grant through one role.
func seedUserWithGrant(t *testing.T, db *gorm.DB, username, password string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{Username: username, Email: username + "@example.com", Password: string(hashed), IsActive: true, IsVerified: true}
	require.NoError(t, db.Create(user).Error)

	role := &model.Role{Name: "Counter-" + username, IsActive: true}
	require.NoError(t, db.Create(role).Error)
	require.NoError(t, db.Create(&model.UserRole{UserID: user.ID, RoleID: role.ID, IsActive: true}).Error)

	perm := &model.PagePermission{PageName: "Donations", PageURL: "/donations", PermissionKind: auth.PermissionRead, IsActive: true}
	require.NoError(t, db.Create(perm).Error)
	require.NoError(t, db.Create(&model.RolePermission{RoleID: role.ID, PagePermissionID: perm.ID, IsActive: true}).Error)

	return user
}

func newTestRouter(t *testing.T, db *gorm.DB, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	authService := service.NewAuthService(userRepo, roleRepo, grantRepo)

	authz := NewAuthorizer(authService, grantRepo, auth.NewPolicyRegistry(), cfg)

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "OK"}) }

	router := gin.New()
	router.Use(authz.ResolveIdentity())
	router.GET("/api/donations", authz.RequirePermission(auth.PermissionRead, "/donations"), ok)
	router.POST("/api/donations", authz.RequirePermission(auth.PermissionWrite, "/donations"), ok)
	router.GET("/api/auth/me", authz.RequireAuthenticated(), ok)
	router.GET("/health", authz.RequirePermission(auth.PermissionRead, "/donations"), ok)
	return router
}

func doRequest(router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func basicHeader(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

func TestRequirePermission(t *testing.T) {
	db := newTestDB(t)
	seedUserWithGrant(t, db, "counter", "secret123")
	router := newTestRouter(t, db, Config{
		PublicEndpoints:       []string{"/health"},
		PermissionAuthEnabled: true,
	})

	t.Run("anonymous request is 401", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/donations", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed credentials stay anonymous", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/donations", "Basic not-base64!!!")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/donations", basicHeader("counter", "wrong"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("granted permission is 200", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/donations", basicHeader("counter", "secret123"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing permission is 403, not 500", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/donations", basicHeader("counter", "secret123"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("public prefix bypasses everything", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequirePermissionDisabledFlag(t *testing.T) {
	db := newTestDB(t)
	seedUserWithGrant(t, db, "counter", "secret123")
	router := newTestRouter(t, db, Config{PermissionAuthEnabled: false})

	// With evaluation off, authentication is still demanded but any
	// authenticated identity passes.
	rec := doRequest(router, http.MethodPost, "/api/donations", basicHeader("counter", "secret123"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/donations", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthenticated(t *testing.T) {
	db := newTestDB(t)
	seedUserWithGrant(t, db, "counter", "secret123")
	router := newTestRouter(t, db, Config{PermissionAuthEnabled: true})

	rec := doRequest(router, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/auth/me", basicHeader("counter", "secret123"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevocationTakesEffectNextRequest(t *testing.T) {
	db := newTestDB(t)
	user := seedUserWithGrant(t, db, "counter", "secret123")
	router := newTestRouter(t, db, Config{PermissionAuthEnabled: true})

	rec := doRequest(router, http.MethodGet, "/api/donations", basicHeader("counter", "secret123"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Grants are recomputed per request; switching the link off denies the
	// very next call.
	require.NoError(t, db.Model(&model.UserRole{}).
		Where("user_id = ?", user.ID).
		Update("is_active", false).Error)

	rec = doRequest(router, http.MethodGet, "/api/donations", basicHeader("counter", "secret123"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicPrefixMatchingIsCaseInsensitive(t *testing.T) {
	a := &Authorizer{cfg: Config{PublicEndpoints: []string{"/Swagger", "/health"}}}
	assert.True(t, a.isPublic("/swagger/index.html"))
	assert.True(t, a.isPublic("/HEALTH"))
	assert.False(t, a.isPublic("/api/donations"))
	assert.False(t, a.isPublic(""))
}
