package handler

import (
	"net/http"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// rolePage is the page URL guarding role and permission configuration.
const rolePage = "/userroleconfiguration"

type RoleHandler struct {
	roleService service.RoleService
	authz       *middleware.Authorizer
}

func NewRoleHandler(roleService service.RoleService, authz *middleware.Authorizer) *RoleHandler {
	return &RoleHandler{roleService: roleService, authz: authz}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/api/roles")
	{
		roles.GET("", h.authz.RequirePermission(auth.PermissionRead, rolePage), h.ListRoles)
		roles.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, rolePage), h.GetRole)
		roles.POST("", h.authz.RequirePermission(auth.PermissionWrite, rolePage), h.CreateRole)
		roles.PUT("/:id", h.authz.RequirePermission(auth.PermissionUpdate, rolePage), h.UpdateRole)
		roles.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, rolePage), h.DeleteRole)

		roles.GET("/:id/permissions", h.authz.RequirePermission(auth.PermissionRead, rolePage), h.RolePermissions)
		roles.POST("/:id/permissions", h.authz.RequirePermission(auth.PermissionWrite, rolePage), h.UpdateRolePermissions)
	}

	perms := router.Group("/api/permissions")
	{
		perms.GET("", h.authz.RequirePermission(auth.PermissionRead, rolePage), h.ListPagePermissions)
	}

	users := router.Group("/api/users")
	{
		users.POST("/:id/roles", h.authz.RequirePermission(auth.PermissionWrite, rolePage), h.AssignRole)
		users.DELETE("/:id/roles/:roleId", h.authz.RequirePermission(auth.PermissionDelete, rolePage), h.RevokeRole)
	}
}

// ListRoles returns all roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRole returns a single role by ID
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// CreateRole creates a new custom role
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// UpdateRole updates a role's name, description and active flag
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// DeleteRole deletes a non-system role
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Role deleted successfully"}))
}

// RolePermissions returns the page permissions currently granted to a role
func (h *RoleHandler) RolePermissions(c *gin.Context) {
	perms, err := h.roleService.RolePermissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, perms))
}

// UpdateRolePermissions replaces all permissions for a role
func (h *RoleHandler) UpdateRolePermissions(c *gin.Context) {
	var req service.UpdateRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	perms, err := h.roleService.UpdateRolePermissions(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, perms))
}

// ListPagePermissions returns every page permission definition
func (h *RoleHandler) ListPagePermissions(c *gin.Context) {
	perms, err := h.roleService.ListPagePermissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, perms))
}

// AssignRole links a role to a user
func (h *RoleHandler) AssignRole(c *gin.Context) {
	var req struct {
		RoleID string `json:"role_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.roleService.AssignRoleToUser(c.Request.Context(), c.Param("id"), req.RoleID); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Role assigned"}))
}

// RevokeRole deactivates a user's role link without deleting it
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	if err := h.roleService.RevokeRoleFromUser(c.Request.Context(), c.Param("id"), c.Param("roleId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Role revoked"}))
}
