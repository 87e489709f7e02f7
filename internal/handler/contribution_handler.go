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

const contributionPage = "/contributions"

type ContributionHandler struct {
	contributionService service.ContributionService
	authz               *middleware.Authorizer
}

func NewContributionHandler(contributionService service.ContributionService, authz *middleware.Authorizer) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService, authz: authz}
}

func (h *ContributionHandler) RegisterRoutes(router *gin.RouterGroup) {
	schemes := router.Group("/api/contributions/schemes")
	{
		schemes.GET("", h.authz.RequirePermission(auth.PermissionRead, contributionPage), h.ListSchemes)
		schemes.GET("/:id", h.authz.RequirePermission(auth.PermissionRead, contributionPage), h.GetScheme)
		schemes.POST("", h.authz.RequirePermission(auth.PermissionWrite, contributionPage), h.CreateScheme)
		schemes.DELETE("/:id", h.authz.RequirePermission(auth.PermissionDelete, contributionPage), h.CloseScheme)

		schemes.GET("/:id/payments", h.authz.RequirePermission(auth.PermissionRead, contributionPage), h.ListPayments)
		schemes.POST("/:id/payments", h.authz.RequirePermission(auth.PermissionWrite, contributionPage), h.Pay)
		schemes.GET("/:id/total", h.authz.RequirePermission(auth.PermissionRead, contributionPage), h.Total)
	}
}

func (h *ContributionHandler) CreateScheme(c *gin.Context) {
	var req service.CreateSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	scheme, err := h.contributionService.CreateScheme(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, scheme))
}

func (h *ContributionHandler) GetScheme(c *gin.Context) {
	scheme, err := h.contributionService.GetScheme(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, scheme))
}

func (h *ContributionHandler) ListSchemes(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "temple_id query parameter required"))
		return
	}

	params := pagination.Parse(c)
	schemes, total, err := h.contributionService.ListSchemes(c.Request.Context(), templeID, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, schemes, params.Page, params.Limit, total))
}

// CloseScheme marks a scheme inactive; closed schemes refuse new payments.
func (h *ContributionHandler) CloseScheme(c *gin.Context) {
	if err := h.contributionService.CloseScheme(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Scheme closed"}))
}

func (h *ContributionHandler) Pay(c *gin.Context) {
	var req service.PayContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contribution, err := h.contributionService.Pay(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, contribution))
}

func (h *ContributionHandler) ListPayments(c *gin.Context) {
	params := pagination.Parse(c)
	payments, total, err := h.contributionService.ListPayments(c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, payments, params.Page, params.Limit, total))
}

func (h *ContributionHandler) Total(c *gin.Context) {
	total, err := h.contributionService.Total(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, total))
}
