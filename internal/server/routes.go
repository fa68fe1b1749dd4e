package server

// RegisterAPIRoutes wires the public site endpoints and the admin CRM under
// /api.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/services", s.PublicServices)
	api.GET("/portfolio", s.PublicPortfolio)
	api.GET("/pricing", s.PublicPricing)

	intake := api.Group("", s.IntakeRateLimit())
	intake.POST("/contact", s.SubmitContact)
	intake.POST("/quotes", s.SubmitQuote)
	intake.POST("/project-requests", s.SubmitProjectRequest)

	admin := api.Group("/admin", s.AdminRequired())

	admin.POST("/customers", s.CreateCustomer)
	admin.GET("/customers", s.ListCustomers)
	admin.GET("/customers/:id", s.GetCustomerByID)
	admin.PATCH("/customers/:id", s.UpdateCustomer)
	admin.DELETE("/customers/:id", s.DeleteCustomer)
	admin.POST("/customers/:id/projects", s.AddProject)
	admin.PATCH("/customers/:id/projects/:project_id", s.UpdateProject)
	admin.DELETE("/customers/:id/projects/:project_id", s.RemoveProject)
	admin.POST("/customers/:id/projects/:project_id/milestones", s.AddMilestone)
	admin.PATCH("/customers/:id/projects/:project_id/milestones/:index", s.SetMilestoneCompleted)

	admin.POST("/payments", s.CreatePayment)
	admin.GET("/payments", s.ListPayments)
	admin.GET("/payments/:id", s.GetPaymentByID)
	admin.PATCH("/payments/:id", s.UpdatePayment)
	admin.DELETE("/payments/:id", s.DeletePayment)

	admin.GET("/intake/contact", s.ListContacts)
	admin.PATCH("/intake/contact/:id", s.UpdateContactStatus)
	admin.DELETE("/intake/contact/:id", s.DeleteContact)
	admin.GET("/intake/quotes", s.ListQuotes)
	admin.PATCH("/intake/quotes/:id", s.UpdateQuoteStatus)
	admin.DELETE("/intake/quotes/:id", s.DeleteQuote)
	admin.GET("/intake/project-requests", s.ListProjectRequests)
	admin.PATCH("/intake/project-requests/:id", s.UpdateProjectRequestStatus)
	admin.DELETE("/intake/project-requests/:id", s.DeleteProjectRequest)

	admin.POST("/catalog/services", s.CreateService)
	admin.PUT("/catalog/services/:id", s.UpdateService)
	admin.DELETE("/catalog/services/:id", s.DeleteService)
	admin.POST("/catalog/portfolio", s.CreatePortfolio)
	admin.PUT("/catalog/portfolio/:id", s.UpdatePortfolio)
	admin.DELETE("/catalog/portfolio/:id", s.DeletePortfolio)
	admin.POST("/catalog/pricing", s.CreatePricing)
	admin.PUT("/catalog/pricing/:id", s.UpdatePricing)
	admin.DELETE("/catalog/pricing/:id", s.DeletePricing)
}
