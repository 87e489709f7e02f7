package handler

import (
	"net/http"
	"strconv"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const eventPage = "/events"

type EventHandler struct {
	eventService service.EventService
	authz        *middleware.Authorizer
}

func NewEventHandler(eventService service.EventService, authz *middleware.Authorizer) *EventHandler {
	return &EventHandler{eventService: eventService, authz: authz}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/api/events")
	{
		events.GET("", h.authz.RequirePermission(auth.PermissionRead, eventPage), h.List)
		events.GET("/upcoming", h.authz.RequirePermission(auth.PermissionRead, eventPage), h.Upcoming)
		events.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, eventPage), h.Get)
		events.POST("", h.authz.RequirePermission(auth.PermissionWrite, eventPage), h.Create)
		events.PUT("/:id", h.authz.RequirePermission(auth.PermissionUpdate, eventPage), h.Update)
		events.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, eventPage), h.Cancel)
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, event))
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, event))
}

func (h *EventHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	events, total, err := h.eventService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, events, params.Page, params.Limit, total))
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > pagination.MaxLimit {
		limit = 10
	}

	events, err := h.eventService.Upcoming(c.Request.Context(), templeID, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, events))
}

func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, event))
}

func (h *EventHandler) Cancel(c *gin.Context) {
	if err := h.eventService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Event cancelled"}))
}
