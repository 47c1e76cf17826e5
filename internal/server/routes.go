package server

import "github.com/gin-gonic/gin"

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/readyz", s.Readyz)
	engine.GET("/metrics", metricsHandler())

	v1 := engine.Group("/v1")

	// Public surface: tenant onboarding, the embeddable widget and payment
	// provider webhooks. Everything else needs an API key.
	v1.POST("/tenants", s.OnboardTenant)
	v1.POST("/webhooks/:provider", s.HandlePaymentWebhook)

	widget := v1.Group("/widget/:key", s.widgetRateLimit())
	{
		widget.POST("/estimate", s.WidgetEstimate)
		widget.POST("/reservations", s.WidgetSubmit)
		widget.GET("/reservations/:reference", s.WidgetReservation)
	}

	api := v1.Group("", s.APIKeyRequired())
	{
		api.GET("/tenant", s.GetCurrentTenant)
		api.GET("/tenant/usage", s.GetTenantUsage)

		api.POST("/api-keys", s.CreateAPIKey)
		api.GET("/api-keys", s.ListAPIKeys)
		api.DELETE("/api-keys/:id", s.RevokeAPIKey)

		api.POST("/locations", s.CreateLocation)
		api.GET("/locations", s.ListLocations)
		api.GET("/locations/:id", s.GetLocation)
		api.PATCH("/locations/:id", s.UpdateLocation)
		api.DELETE("/locations/:id", s.DeleteLocation)

		api.POST("/storage-units", s.CreateStorageUnit)
		api.GET("/storage-units", s.ListStorageUnits)
		api.GET("/storage-units/:id", s.GetStorageUnit)
		api.PATCH("/storage-units/:id", s.UpdateStorageUnit)
		api.DELETE("/storage-units/:id", s.DeleteStorageUnit)

		api.POST("/pricing/estimate", s.EstimatePrice)
		api.POST("/pricing/rules", s.CreatePricingRule)
		api.GET("/pricing/rules", s.ListPricingRules)
		api.GET("/pricing/rules/:id", s.GetPricingRule)
		api.PATCH("/pricing/rules/:id", s.UpdatePricingRule)
		api.DELETE("/pricing/rules/:id", s.DeletePricingRule)

		api.POST("/reservations", s.CreateReservation)
		api.GET("/reservations", s.ListReservations)
		api.GET("/reservations/:id", s.GetReservation)
		api.POST("/reservations/:id/transition", s.TransitionReservation)

		api.POST("/widget-keys", s.CreateWidgetKey)
		api.GET("/widget-keys", s.ListWidgetKeys)
		api.DELETE("/widget-keys/:id", s.RevokeWidgetKey)

		api.GET("/payments", s.ListPayments)

		api.POST("/tickets", s.CreateTicket)
		api.GET("/tickets", s.ListTickets)
		api.GET("/tickets/:id", s.GetTicket)
		api.POST("/tickets/:id/messages", s.AppendTicketMessage)
		api.POST("/tickets/:id/status", s.UpdateTicketStatus)
		api.POST("/tickets/:id/close", s.CloseTicket)

		api.POST("/assistant/chat", s.AssistantChat)
	}
}
