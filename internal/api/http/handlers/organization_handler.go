package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventkampus/api/internal/api/dto"
	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/service"
	apperrors "github.com/eventkampus/api/pkg/util"
)

// OrganizationHandler exposes the organizer dashboard endpoints.
type OrganizationHandler struct {
	service *service.EventService
}

// NewOrganizationHandler constructs handler.
func NewOrganizationHandler(eventService *service.EventService) *OrganizationHandler {
	return &OrganizationHandler{service: eventService}
}

// MyEvents GET /organization/my-events.
func (h *OrganizationHandler) MyEvents(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.service.ListMyEvents(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewEventResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Attendees GET /organization/my-events/:id/attendees.
func (h *OrganizationHandler) Attendees(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.service.ListAttendees(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttendeeResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewAttendeeResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ConfirmPayment PATCH /organization/confirm-payment/:registrationId.
func (h *OrganizationHandler) ConfirmPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reg, err := h.service.ConfirmPayment(c.UserContext(), principal.User, c.Params("registrationId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}
