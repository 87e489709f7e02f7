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

const templePage = "/temples"

type TempleHandler struct {
	templeService service.TempleService
	authz         *middleware.Authorizer
}

func NewTempleHandler(templeService service.TempleService, authz *middleware.Authorizer) *TempleHandler {
	return &TempleHandler{templeService: templeService, authz: authz}
}

func (h *TempleHandler) RegisterRoutes(router *gin.RouterGroup) {
	temples := router.Group("/api/temples")
	{
		temples.GET("", h.authz.RequirePermission(auth.PermissionRead, templePage), h.List)
		temples.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, templePage), h.Get)
		temples.POST("", h.authz.RequirePermission(auth.PermissionWrite, templePage), h.Create)
		temples.PUT("/:id", h.authz.RequirePermission(auth.PermissionUpdate, templePage), h.Update)
		temples.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, templePage), h.Deactivate)
	}
}

func (h *TempleHandler) Create(c *gin.Context) {
	var req service.CreateTempleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	temple, err := h.templeService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, temple))
}

func (h *TempleHandler) Get(c *gin.Context) {
	temple, err := h.templeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, temple))
}

func (h *TempleHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	temples, total, err := h.templeService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, temples, params.Page, params.Limit, total))
}

func (h *TempleHandler) Update(c *gin.Context) {
	var req service.UpdateTempleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	temple, err := h.templeService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, temple))
}

func (h *TempleHandler) Deactivate(c *gin.Context) {
	if err := h.templeService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Temple deactivated"}))
}
