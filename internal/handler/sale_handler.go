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

const salePage = "/sales"

type SaleHandler struct {
	saleService service.SaleService
	authz       *middleware.Authorizer
}

func NewSaleHandler(saleService service.SaleService, authz *middleware.Authorizer) *SaleHandler {
	return &SaleHandler{saleService: saleService, authz: authz}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales")
	{
		sales.GET("", h.authz.RequirePermission(auth.PermissionRead, salePage), h.List)
		sales.POST("", h.authz.RequirePermission(auth.PermissionWrite, salePage), h.Create)
		sales.GET("/summary", h.authz.RequirePermission(auth.PermissionRead, salePage), h.DailySummary)
	}
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

func (h *SaleHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	sales, total, err := h.saleService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, sales, params.Page, params.Limit, total))
}

// DailySummary returns the sale total and count for one calendar day,
// defaulting to today. The date query parameter uses 2006-01-02 format.
func (h *SaleHandler) DailySummary(c *gin.Context) {
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

	summary, err := h.saleService.DailySummary(c.Request.Context(), templeID, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
