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

const inventoryPage = "/inventory"

type InventoryHandler struct {
	inventoryService service.InventoryService
	authz            *middleware.Authorizer
}

func NewInventoryHandler(inventoryService service.InventoryService, authz *middleware.Authorizer) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, authz: authz}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/inventory")
	{
		items.GET("", h.authz.RequirePermission(auth.PermissionRead, inventoryPage), h.List)
		items.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, inventoryPage), h.Get)
		items.POST("", h.authz.RequirePermission(auth.PermissionWrite, inventoryPage), h.Create)
		items.POST("/:id/adjust", h.authz.RequirePermission(auth.PermissionUpdate, inventoryPage), h.Adjust)
		items.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, inventoryPage), h.Delete)
	}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

func (h *InventoryHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	items, total, err := h.inventoryService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, items, params.Page, params.Limit, total))
}

// Adjust applies a signed quantity delta; stock never goes below zero.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req service.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Inventory item removed"}))
}
