package handler

import (
	"net/http"
	"time"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const poojaPage = "/poojas"

type PoojaHandler struct {
	poojaService service.PoojaService
	authz        *middleware.Authorizer
}

func NewPoojaHandler(poojaService service.PoojaService, authz *middleware.Authorizer) *PoojaHandler {
	return &PoojaHandler{poojaService: poojaService, authz: authz}
}

func (h *PoojaHandler) RegisterRoutes(router *gin.RouterGroup) {
	poojas := router.Group("/api/poojas")
	{
		poojas.GET("", h.authz.RequirePermission(auth.PermissionRead, poojaPage), h.List)
		poojas.GET("/bookings", h.authz.RequirePermission(auth.PermissionRead, poojaPage), h.BookingsForDate)
		poojas.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, poojaPage), h.Get)
		poojas.POST("", h.authz.RequirePermission(auth.PermissionWrite, poojaPage), h.Create)
		poojas.PUT("/:id", h.authz.RequirePermission(auth.PermissionUpdate, poojaPage), h.Update)
		poojas.POST("/:id/bookings", h.authz.RequirePermission(auth.PermissionWrite, poojaPage), h.Book)
		poojas.DELETE("/bookings/:bookingId", h.authz.RequirePermission(auth.PermissionDelete, poojaPage), h.CancelBooking)
	}
}

func (h *PoojaHandler) Create(c *gin.Context) {
	var req service.CreatePoojaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pooja, err := h.poojaService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, pooja))
}

func (h *PoojaHandler) Get(c *gin.Context) {
	pooja, err := h.poojaService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pooja))
}

func (h *PoojaHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	poojas, total, err := h.poojaService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, poojas, params.Page, params.Limit, total))
}

func (h *PoojaHandler) Update(c *gin.Context) {
	var req service.UpdatePoojaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pooja, err := h.poojaService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pooja))
}

func (h *PoojaHandler) Book(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.poojaService.Book(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// BookingsForDate lists a temple's bookings for one day (default today).
func (h *PoojaHandler) BookingsForDate(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	day := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	bookings, err := h.poojaService.BookingsForDate(c.Request.Context(), templeID, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, bookings))
}

func (h *PoojaHandler) CancelBooking(c *gin.Context) {
	if err := h.poojaService.CancelBooking(c.Request.Context(), c.Param("bookingId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Booking cancelled"}))
}
