package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventkampus/api/internal/api/dto"
	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/service"
	apperrors "github.com/eventkampus/api/pkg/util"
)

// AttendeeHandler exposes the attendee dashboard endpoints.
type AttendeeHandler struct {
	service *service.EventService
}

// NewAttendeeHandler constructs handler.
func NewAttendeeHandler(eventService *service.EventService) *AttendeeHandler {
	return &AttendeeHandler{service: eventService}
}

// MyRegistrations GET /attendee/my-registrations.
func (h *AttendeeHandler) MyRegistrations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.service.ListMyRegistrations(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.RegistrationResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewRegistrationResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
