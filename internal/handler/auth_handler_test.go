package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/auth"
	"backend/internal/database"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	txManager := repository.NewTransactionManager(db)

	authService := service.NewAuthService(userRepo, roleRepo, grantRepo)
	roleService := service.NewRoleService(roleRepo, userRepo, txManager)
	require.NoError(t, roleService.SeedDefaults(context.Background()))

	authz := middleware.NewAuthorizer(authService, grantRepo, auth.NewPolicyRegistry(), middleware.Config{
		PublicEndpoints:       []string{"/api/auth/register", "/api/auth/login", "/api/auth/verify"},
		PermissionAuthEnabled: true,
	})

	router := gin.New()
	router.Use(authz.ResolveIdentity())
	NewAuthHandler(authService, authz).RegisterRoutes(router.Group(""))

	return &testEnv{router: router}
}

func (e *testEnv) do(method, path, authHeader string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, _ := envelope.Data.(map[string]interface{})
	return data
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "devotee01",
		"email":    "devotee01@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	code, _ := decodeData(t, rec)["verification_code"].(string)
	require.NotEmpty(t, code)

	// Unverified accounts cannot log in yet.
	rec = env.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"login":    "devotee01",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/auth/verify?code="+code, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"login":    "devotee01",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "devotee01", decodeData(t, rec)["username"])
}

func TestLoginFallsBackToBasicHeader(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "devotee01",
		"email":    "devotee01@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	code, _ := decodeData(t, rec)["verification_code"].(string)
	rec = env.do(http.MethodGet, "/api/auth/verify?code="+code, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("devotee01:secret123"))
	rec = env.do(http.MethodPost, "/api/auth/login", header, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPermissionsReflectSeededRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "devotee01",
		"email":    "devotee01@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	code, _ := decodeData(t, rec)["verification_code"].(string)
	rec = env.do(http.MethodGet, "/api/auth/verify?code="+code, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("devotee01:secret123"))
	rec = env.do(http.MethodGet, "/api/auth/permissions", header, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	grants, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	// Self-registered accounts hold the seeded Devotee grants: read events
	// and read poojas.
	assert.Len(t, grants, 2)
}
