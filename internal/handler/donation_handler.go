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

const donationPage = "/donations"

type DonationHandler struct {
	donationService service.DonationService
	authz           *middleware.Authorizer
}

func NewDonationHandler(donationService service.DonationService, authz *middleware.Authorizer) *DonationHandler {
	return &DonationHandler{donationService: donationService, authz: authz}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/api/donations")
	{
		donations.GET("", h.authz.RequirePermission(auth.PermissionRead, donationPage), h.List)
		donations.POST("", h.authz.RequirePermission(auth.PermissionWrite, donationPage), h.Create)
		donations.GET("/summary", h.authz.RequirePermission(auth.PermissionRead, donationPage), h.Summary)
	}
}

func (h *DonationHandler) Create(c *gin.Context) {
	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, donation))
}

func (h *DonationHandler) List(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	donations, total, err := h.donationService.ListByTemple(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, donations, params.Page, params.Limit, total))
}

// Summary aggregates donations for a temple over a date range
// @Summary      Donation summary
// @Description  Sum and count of a temple's donations between from and to (RFC 3339 dates, defaulting to the last 30 days)
// @Tags         donations
// @Produce      json
// @Security     BasicAuth
// @Param        temple_id  query     string  true   "Temple ID"
// @Param        from       query     string  false  "Range start (RFC 3339)"
// @Param        to         query     string  false  "Range end (RFC 3339)"
// @Success      200        {object}  response.Response{data=service.DonationSummary}
// @Router       /api/donations/summary [get]
func (h *DonationHandler) Summary(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid 'from' date"))
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid 'to' date"))
			return
		}
		to = parsed
	}

	summary, err := h.donationService.Summary(c.Request.Context(), templeID, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
