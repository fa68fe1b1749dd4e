package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	intakedomain "github.com/studiokit/atelier/internal/intake/domain"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

// @Summary      Submit Contact Message
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        request body intakedomain.CreateContactRequest true "Contact Message"
// @Success      200  {object}  intakedomain.ContactMessage
// @Router       /contact [post]
func (s *Server) SubmitContact(c *gin.Context) {
	var req intakedomain.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.intakeSvc.CreateContact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Submit Quote Request
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        request body intakedomain.CreateQuoteRequest true "Quote Request"
// @Success      200  {object}  intakedomain.QuoteRequest
// @Router       /quotes [post]
func (s *Server) SubmitQuote(c *gin.Context) {
	var req intakedomain.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.intakeSvc.CreateQuote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Submit Project Request
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        request body intakedomain.CreateProjectRequestInput true "Project Request"
// @Success      200  {object}  intakedomain.ProjectRequest
// @Router       /project-requests [post]
func (s *Server) SubmitProjectRequest(c *gin.Context) {
	var req intakedomain.CreateProjectRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.intakeSvc.CreateProjectRequest(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) bindIntakeList(c *gin.Context) (intakedomain.ListRequest, bool) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return intakedomain.ListRequest{}, false
	}
	return intakedomain.ListRequest{
		Pagination: query.Pagination,
		Status:     strings.TrimSpace(query.Status),
	}, true
}

type intakeStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      List Contact Messages
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  intakedomain.ListContactResponse
// @Router       /admin/intake/contact [get]
func (s *Server) ListContacts(c *gin.Context) {
	req, ok := s.bindIntakeList(c)
	if !ok {
		return
	}
	resp, err := s.intakeSvc.ListContacts(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Contact Status
// @Tags         intake
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Message ID"
// @Param        request  body  intakeStatusRequest true "Status"
// @Success      200  {object}  intakedomain.ContactMessage
// @Router       /admin/intake/contact/{id} [patch]
func (s *Server) UpdateContactStatus(c *gin.Context) {
	var req intakeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.intakeSvc.UpdateContactStatus(c.Request.Context(), id, intakedomain.IntakeStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.contact.status", "contact_message", id, map[string]any{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Contact Message
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Message ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/intake/contact/{id} [delete]
func (s *Server) DeleteContact(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.intakeSvc.DeleteContact(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.contact.delete", "contact_message", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List Quote Requests
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  intakedomain.ListQuoteResponse
// @Router       /admin/intake/quotes [get]
func (s *Server) ListQuotes(c *gin.Context) {
	req, ok := s.bindIntakeList(c)
	if !ok {
		return
	}
	resp, err := s.intakeSvc.ListQuotes(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Quote Status
// @Tags         intake
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Quote ID"
// @Param        request  body  intakeStatusRequest true "Status"
// @Success      200  {object}  intakedomain.QuoteRequest
// @Router       /admin/intake/quotes/{id} [patch]
func (s *Server) UpdateQuoteStatus(c *gin.Context) {
	var req intakeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.intakeSvc.UpdateQuoteStatus(c.Request.Context(), id, intakedomain.IntakeStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.quote.status", "quote_request", id, map[string]any{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Quote Request
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Quote ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/intake/quotes/{id} [delete]
func (s *Server) DeleteQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.intakeSvc.DeleteQuote(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.quote.delete", "quote_request", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List Project Requests
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  intakedomain.ListProjectRequestResponse
// @Router       /admin/intake/project-requests [get]
func (s *Server) ListProjectRequests(c *gin.Context) {
	req, ok := s.bindIntakeList(c)
	if !ok {
		return
	}
	resp, err := s.intakeSvc.ListProjectRequests(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Project Request Status
// @Tags         intake
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string  true  "Request ID"
// @Param        request  body  intakeStatusRequest true "Status"
// @Success      200  {object}  intakedomain.ProjectRequest
// @Router       /admin/intake/project-requests/{id} [patch]
func (s *Server) UpdateProjectRequestStatus(c *gin.Context) {
	var req intakeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.intakeSvc.UpdateProjectRequestStatus(c.Request.Context(), id, intakedomain.IntakeStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.project_request.status", "project_request", id, map[string]any{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Project Request
// @Tags         intake
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Request ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/intake/project-requests/{id} [delete]
func (s *Server) DeleteProjectRequest(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.intakeSvc.DeleteProjectRequest(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "intake.project_request.delete", "project_request", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
