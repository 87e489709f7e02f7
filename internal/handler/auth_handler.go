package handler

import (
	"errors"
	"net/http"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	authz       *middleware.Authorizer
}

func NewAuthHandler(authService service.AuthService, authz *middleware.Authorizer) *AuthHandler {
	return &AuthHandler{authService: authService, authz: authz}
}

// RegisterRoutes binds the auth endpoints. Register, login and verify are
// public; the rest require an authenticated identity.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/verify", h.Verify)

		authGroup.GET("/me", h.authz.RequireAuthenticated(), h.Me)
		authGroup.GET("/roles", h.authz.RequireAuthenticated(), h.Roles)
		authGroup.GET("/permissions", h.authz.RequireAuthenticated(), h.Permissions)
	}
}

// Register creates a new unverified account
// @Summary      Register a new account
// @Description  Creates an inactive, unverified account and issues a one-time verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration payload"
// @Success      201      {object}  response.Response{data=service.RegisterResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// Login authenticates with credentials from the JSON body or the Basic header
// @Summary      Login
// @Description  Authenticates a user by username-or-email and password. Credentials may come from the JSON body or a Basic Authorization header.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  false  "Login credentials"
// @Success      200      {object}  response.Response{data=auth.Identity}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Fall back to the Basic header when no usable body was sent.
		creds, ok, parseErr := auth.ParseBasicCredentials(c.GetHeader("Authorization"))
		if parseErr != nil || !ok {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "credentials required"))
			return
		}
		req.Login = creds.Login
		req.Password = creds.Password
	}

	identity, err := h.authService.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		// Unverified/deactivated messages are returned inline so the user
		// knows how to remediate; credential failures stay generic.
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, identity))
}

// Verify consumes an email verification code
// @Summary      Verify email
// @Tags         auth
// @Produce      json
// @Param        code  query     string  true  "Verification code"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "verification code required"))
		return
	}

	if err := h.authService.Verify(c.Request.Context(), code); err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, service.ErrInvalidVerifyCode) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "email verified; you can now log in"}))
}

// Me returns the authenticated user's profile
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  response.Response{data=service.ProfileResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
		return
	}

	profile, err := h.authService.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// Roles returns the caller's active role names
// @Summary      Current user roles
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /api/auth/roles [get]
func (h *AuthHandler) Roles(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
		return
	}

	roles, err := h.authService.RoleNames(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// Permissions returns the caller's computed grant set
// @Summary      Current user grants
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  response.Response{data=[]repository.Grant}
// @Router       /api/auth/permissions [get]
func (h *AuthHandler) Permissions(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
		return
	}

	grants, err := h.authService.Grants(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grants))
}
