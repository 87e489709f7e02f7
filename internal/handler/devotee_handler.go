package handler

import (
	"net/http"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const devoteePage = "/devotees"

type DevoteeHandler struct {
	devoteeService service.DevoteeService
	authz          *middleware.Authorizer
}

func NewDevoteeHandler(devoteeService service.DevoteeService, authz *middleware.Authorizer) *DevoteeHandler {
	return &DevoteeHandler{devoteeService: devoteeService, authz: authz}
}

func (h *DevoteeHandler) RegisterRoutes(router *gin.RouterGroup) {
	devotees := router.Group("/api/devotees")
	{
		devotees.GET("", h.authz.RequirePermission(auth.PermissionRead, devoteePage), h.List)
		devotees.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, devoteePage), h.Get)
		devotees.POST("", h.authz.RequirePermission(auth.PermissionWrite, devoteePage), h.Create)
		devotees.PUT("/:id", h.authz.RequirePermission(auth.PermissionUpdate, devoteePage), h.Update)
		devotees.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, devoteePage), h.Deactivate)
	}
}

func (h *DevoteeHandler) Create(c *gin.Context) {
	var req service.CreateDevoteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	devotee, err := h.devoteeService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, devotee))
}

func (h *DevoteeHandler) Get(c *gin.Context) {
	devotee, err := h.devoteeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, devotee))
}

// List requires a temple_id query parameter; devotee listings are always
// tenant-scoped.
func (h *DevoteeHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	devotees, total, err := h.devoteeService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, devotees, params.Page, params.Limit, total))
}

func (h *DevoteeHandler) Update(c *gin.Context) {
	var req service.UpdateDevoteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	devotee, err := h.devoteeService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, devotee))
}

func (h *DevoteeHandler) Deactivate(c *gin.Context) {
	if err := h.devoteeService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Devotee deactivated"}))
}
