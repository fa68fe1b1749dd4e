package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/studiokit/atelier/internal/catalog/domain"
)

// @Summary      Public Services
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  []catalogdomain.ServiceOffering
// @Router       /services [get]
func (s *Server) PublicServices(c *gin.Context) {
	resp, err := s.catalogSvc.PublicServices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Public Portfolio
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  []catalogdomain.PortfolioItem
// @Router       /portfolio [get]
func (s *Server) PublicPortfolio(c *gin.Context) {
	resp, err := s.catalogSvc.PublicPortfolio(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Public Pricing
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  []catalogdomain.PricingPlan
// @Router       /pricing [get]
func (s *Server) PublicPricing(c *gin.Context) {
	resp, err := s.catalogSvc.PublicPricing(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Service Offering
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body catalogdomain.UpsertServiceRequest true "Service Offering"
// @Success      200  {object}  catalogdomain.ServiceOffering
// @Router       /admin/catalog/services [post]
func (s *Server) CreateService(c *gin.Context) {
	var req catalogdomain.UpsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateService(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.service.create", "service_offering", resp.ID.String(), map[string]any{"slug": resp.Slug})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Service Offering
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Service ID"
// @Param        request  body  catalogdomain.UpsertServiceRequest true "Service Offering"
// @Success      200  {object}  catalogdomain.ServiceOffering
// @Router       /admin/catalog/services/{id} [put]
func (s *Server) UpdateService(c *gin.Context) {
	var req catalogdomain.UpsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.catalogSvc.UpdateService(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.service.update", "service_offering", req.ID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Service Offering
// @Tags         catalog
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Service ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/catalog/services/{id} [delete]
func (s *Server) DeleteService(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeleteService(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.service.delete", "service_offering", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Create Portfolio Item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body catalogdomain.UpsertPortfolioRequest true "Portfolio Item"
// @Success      200  {object}  catalogdomain.PortfolioItem
// @Router       /admin/catalog/portfolio [post]
func (s *Server) CreatePortfolio(c *gin.Context) {
	var req catalogdomain.UpsertPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreatePortfolio(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.portfolio.create", "portfolio_item", resp.ID.String(), map[string]any{"slug": resp.Slug})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Portfolio Item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Portfolio ID"
// @Param        request  body  catalogdomain.UpsertPortfolioRequest true "Portfolio Item"
// @Success      200  {object}  catalogdomain.PortfolioItem
// @Router       /admin/catalog/portfolio/{id} [put]
func (s *Server) UpdatePortfolio(c *gin.Context) {
	var req catalogdomain.UpsertPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.catalogSvc.UpdatePortfolio(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.portfolio.update", "portfolio_item", req.ID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Portfolio Item
// @Tags         catalog
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Portfolio ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/catalog/portfolio/{id} [delete]
func (s *Server) DeletePortfolio(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeletePortfolio(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.portfolio.delete", "portfolio_item", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Create Pricing Plan
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body catalogdomain.UpsertPricingRequest true "Pricing Plan"
// @Success      200  {object}  catalogdomain.PricingPlan
// @Router       /admin/catalog/pricing [post]
func (s *Server) CreatePricing(c *gin.Context) {
	var req catalogdomain.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreatePricing(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.pricing.create", "pricing_plan", resp.ID.String(), map[string]any{"name": resp.Name})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Pricing Plan
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Pricing ID"
// @Param        request  body  catalogdomain.UpsertPricingRequest true "Pricing Plan"
// @Success      200  {object}  catalogdomain.PricingPlan
// @Router       /admin/catalog/pricing/{id} [put]
func (s *Server) UpdatePricing(c *gin.Context) {
	var req catalogdomain.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.catalogSvc.UpdatePricing(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.pricing.update", "pricing_plan", req.ID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Pricing Plan
// @Tags         catalog
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Pricing ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/catalog/pricing/{id} [delete]
func (s *Server) DeletePricing(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeletePricing(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "catalog.pricing.delete", "pricing_plan", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
