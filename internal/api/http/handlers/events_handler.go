package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/eventkampus/api/internal/api/dto"
	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/service"
	apperrors "github.com/eventkampus/api/pkg/util"
)

// EventsHandler manages the public catalog and registration endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// ListEvents GET /events.
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	list, err := h.service.ListEvents(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewEventResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEvent GET /events/:id.
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	event, tickets, err := h.service.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	tiers := make([]dto.TicketTypeResponse, 0, len(tickets))
	for i := range tickets {
		tiers = append(tiers, dto.NewTicketTypeResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.EventDetailResponse{
		Event:   dto.NewEventResponse(event),
		Tickets: tiers,
	}})
}

// CreateEvent POST /events.
func (h *EventsHandler) CreateEvent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.service.CreateEvent(c.UserContext(), principal.User, service.EventCreateInput{
		Name:        req.Name,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// AddTicketType POST /events/:id/tickets.
func (h *EventsHandler) AddTicketType(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.AddTicketType(c.UserContext(), principal.User, c.Params("id"), service.TicketTypeInput{
		Name:  req.Name,
		Price: req.Price,
		Quota: req.Quota,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketTypeResponse(ticket)})
}

// Register POST /events/:id/register.
func (h *EventsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RegisterForEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketTypeID == "" {
		return apperrors.NewValidationError("ticket_type_id required", nil)
	}

	result, err := h.service.Register(c.UserContext(), principal.User, c.Params("id"), req.TicketTypeID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.RegisterForEventResponse{
		Registration: dto.NewRegistrationResponse(result.Registration),
		IsFree:       result.IsFree,
		PaymentToken: result.PaymentToken,
		RedirectURL:  result.RedirectURL,
	}})
}
