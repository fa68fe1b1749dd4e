package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

// @Summary      Create Customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body customerdomain.CreateCustomerRequest true "Create Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.create", "customer", resp.ID.String(), map[string]any{
		"name":  resp.Name,
		"email": resp.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Customers
// @Tags         customers
// @Produce      json
// @Security     ApiKeyAuth
// @Param        name        query  string  false  "Name"
// @Param        email       query  string  false  "Email"
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  customerdomain.ListCustomerResponse
// @Router       /admin/customers [get]
func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name   string `form:"name"`
		Email  string `form:"email"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
		Email:      strings.TrimSpace(query.Email),
		Status:     strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Customer
// @Tags         customers
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id} [get]
func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Customer ID"
// @Param        request  body  customerdomain.UpdateCustomerRequest true "Update Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id} [patch]
func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.customerSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.update", "customer", resp.ID.String(), nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Customer
// @Tags         customers
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/customers/{id} [delete]
func (s *Server) DeleteCustomer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.delete", "customer", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Add Project
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Customer ID"
// @Param        request  body  customerdomain.AddProjectRequest true "Add Project Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id}/projects [post]
func (s *Server) AddProject(c *gin.Context) {
	var req customerdomain.AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CustomerID = strings.TrimSpace(c.Param("id"))

	resp, err := s.customerSvc.AddProject(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.project.add", "customer", req.CustomerID, map[string]any{
		"title":  req.Title,
		"budget": req.Budget,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Project
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id          path  string  true  "Customer ID"
// @Param        project_id  path  string  true  "Project ID"
// @Param        request     body  customerdomain.UpdateProjectRequest true "Update Project Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id}/projects/{project_id} [patch]
func (s *Server) UpdateProject(c *gin.Context) {
	var req customerdomain.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CustomerID = strings.TrimSpace(c.Param("id"))
	req.ProjectID = strings.TrimSpace(c.Param("project_id"))

	resp, err := s.customerSvc.UpdateProject(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.project.update", "customer", req.CustomerID, map[string]any{
		"project_id": req.ProjectID,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Remove Project
// @Tags         customers
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id          path  string  true  "Customer ID"
// @Param        project_id  path  string  true  "Project ID"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id}/projects/{project_id} [delete]
func (s *Server) RemoveProject(c *gin.Context) {
	customerID := strings.TrimSpace(c.Param("id"))
	projectID := strings.TrimSpace(c.Param("project_id"))

	resp, err := s.customerSvc.RemoveProject(c.Request.Context(), customerID, projectID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "customer.project.remove", "customer", customerID, map[string]any{
		"project_id": projectID,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Add Milestone
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id          path  string  true  "Customer ID"
// @Param        project_id  path  string  true  "Project ID"
// @Param        request     body  customerdomain.AddMilestoneRequest true "Add Milestone Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id}/projects/{project_id}/milestones [post]
func (s *Server) AddMilestone(c *gin.Context) {
	var req customerdomain.AddMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CustomerID = strings.TrimSpace(c.Param("id"))
	req.ProjectID = strings.TrimSpace(c.Param("project_id"))

	resp, err := s.customerSvc.AddMilestone(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setMilestoneRequest struct {
	Completed bool `json:"completed"`
}

// @Summary      Set Milestone Completion
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id          path  string  true  "Customer ID"
// @Param        project_id  path  string  true  "Project ID"
// @Param        index       path  int     true  "Milestone Index"
// @Param        request     body  setMilestoneRequest true "Set Milestone Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /admin/customers/{id}/projects/{project_id}/milestones/{index} [patch]
func (s *Server) SetMilestoneCompleted(c *gin.Context) {
	var req setMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(c.Param("index")))
	if err != nil {
		AbortWithError(c, newValidationError("index", "invalid_index", "milestone index must be an integer"))
		return
	}

	resp, err := s.customerSvc.SetMilestoneCompleted(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("project_id")),
		index,
		req.Completed,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
