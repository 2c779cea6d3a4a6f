package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventkampus/api/internal/api/http/handlers"
	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Events         *handlers.EventsHandler
	Organization   *handlers.OrganizationHandler
	Attendee       *handlers.AttendeeHandler
	Payment        *handlers.PaymentHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Use(cfg.RateLimiter)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	// public catalog
	app.Get("/events", cfg.Events.ListEvents)
	app.Get("/events/:id", cfg.Events.GetEvent)

	app.Post("/events", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Events.CreateEvent)
	app.Post("/events/:id/tickets", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Events.AddTicketType)
	app.Post("/events/:id/register", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Events.Register)

	org := app.Group("/organization", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization))
	org.Get("/my-events", cfg.Organization.MyEvents)
	org.Get("/my-events/:id/attendees", cfg.Organization.Attendees)
	org.Patch("/confirm-payment/:registrationId", cfg.Organization.ConfirmPayment)

	attendee := app.Group("/attendee", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAttendee))
	attendee.Get("/my-registrations", cfg.Attendee.MyRegistrations)

	// called by the external gateway, not by authenticated clients
	app.Post("/payment/notification", cfg.Payment.Notification)
}
