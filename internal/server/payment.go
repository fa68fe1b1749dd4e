package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

// @Summary      Create Payment
// @Description  Record a payment; an invoice number is assigned atomically
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body paymentdomain.CreatePaymentRequest true "Create Payment Request"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /admin/payments [post]
func (s *Server) CreatePayment(c *gin.Context) {
	var req paymentdomain.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "payment.create", "payment", resp.ID.String(), map[string]any{
		"customer_id":    resp.CustomerID.String(),
		"amount":         resp.Amount,
		"invoice_number": resp.InvoiceNumber,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Payment
// @Description  Patch a payment; customer and invoice number are immutable
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Payment ID"
// @Param        request  body  paymentdomain.UpdatePaymentRequest true "Update Payment Request"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /admin/payments/{id} [patch]
func (s *Server) UpdatePayment(c *gin.Context) {
	var req paymentdomain.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.paymentSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "payment.update", "payment", resp.ID.String(), map[string]any{
		"customer_id": resp.CustomerID.String(),
		"status":      string(resp.Status),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Payment
// @Description  Delete a payment and rebalance the owning customer's ledger
// @Tags         payments
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/payments/{id} [delete]
func (s *Server) DeletePayment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.paymentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "payment.delete", "payment", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Get Payment
// @Tags         payments
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Payment ID"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /admin/payments/{id} [get]
func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Payments
// @Tags         payments
// @Produce      json
// @Security     ApiKeyAuth
// @Param        customer_id  query  string  false  "Customer ID"
// @Param        status       query  string  false  "Status"
// @Param        page_token   query  string  false  "Page Token"
// @Param        page_size    query  int     false  "Page Size"
// @Success      200  {object}  paymentdomain.ListPaymentResponse
// @Router       /admin/payments [get]
func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerID string `form:"customer_id"`
		Status     string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		Pagination: query.Pagination,
		CustomerID: strings.TrimSpace(query.CustomerID),
		Status:     strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
