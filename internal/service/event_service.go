package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eventkampus/api/internal/domain"
	"github.com/eventkampus/api/internal/events"
	"github.com/eventkampus/api/internal/gateway"
	"github.com/eventkampus/api/internal/repository"
	util "github.com/eventkampus/api/pkg/util"
)

const orderIDPrefix = "EVK-"

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Name        string
	Description string
	PosterURL   *string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}

// TicketTypeInput describes a new ticket tier.
type TicketTypeInput struct {
	Name  string
	Price int64
	Quota int
}

// RegistrationResult is what register returns: the ledger row plus the
// gateway session for paid tickets.
type RegistrationResult struct {
	Registration *domain.Registration
	IsFree       bool
	PaymentToken string
	RedirectURL  string
}

// EventService coordinates the catalog and registration flows.
type EventService struct {
	eventsRepo    repository.EventRepository
	tickets       repository.TicketTypeRepository
	registrations repository.RegistrationRepository
	gateway       gateway.Client
	dispatcher    events.Dispatcher
}

// EventDependencies bundles repositories for the event service.
type EventDependencies struct {
	EventRepo        repository.EventRepository
	TicketTypeRepo   repository.TicketTypeRepository
	RegistrationRepo repository.RegistrationRepository
	Gateway          gateway.Client
	Dispatcher       events.Dispatcher
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		eventsRepo:    deps.EventRepo,
		tickets:       deps.TicketTypeRepo,
		registrations: deps.RegistrationRepo,
		gateway:       deps.Gateway,
		dispatcher:    deps.Dispatcher,
	}
}

// ListEvents returns the full catalog ordered by start time.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	list, err := s.eventsRepo.ListAll(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return list, nil
}

// GetEvent returns one event with its ticket tiers.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, []domain.TicketType, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, util.NewNotFound("event", nil)
		}
		return nil, nil, util.MapError(err)
	}
	tickets, err := s.tickets.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, util.MapError(err)
	}
	return event, tickets, nil
}

// CreateEvent persists a new catalog entry owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, actor *domain.User, input EventCreateInput) (*domain.Event, error) {
	if actor.Role != domain.RoleOrganization {
		return nil, util.NewForbidden("organization role required")
	}
	if err := validateEventInput(input.Name, input.Description, input.Location, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		PosterURL:     input.PosterURL,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Location:      strings.TrimSpace(input.Location),
		OwnerUserID:   actor.ID,
		OrganizerName: actor.DisplayName,
	}
	if err := s.eventsRepo.Create(ctx, event); err != nil {
		return nil, util.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type: events.EventEventCreated,
		Payload: events.EventCreatedPayload{
			EventID:     event.ID,
			OwnerUserID: event.OwnerUserID,
			Name:        event.Name,
		},
	})
	return event, nil
}

// AddTicketType creates a tier on an event the caller owns. A missing event
// is a not-found, someone else's event a forbidden.
func (s *EventService) AddTicketType(ctx context.Context, actor *domain.User, eventID string, input TicketTypeInput) (*domain.TicketType, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("event", nil)
		}
		return nil, util.MapError(err)
	}
	if event.OwnerUserID != actor.ID {
		return nil, util.NewForbidden("not the event owner")
	}
	if err := validateTicketTypeInput(input.Name, input.Price, input.Quota); err != nil {
		return nil, err
	}

	ticket := &domain.TicketType{
		EventID: eventID,
		Name:    strings.TrimSpace(input.Name),
		Price:   input.Price,
		Quota:   input.Quota,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, util.MapError(err)
	}
	return ticket, nil
}

// Register runs the core registration flow. Free tickets are written as
// PAID immediately; paid tickets are written as PENDING and a gateway
// session token is returned for the client to complete out-of-band.
func (s *EventService) Register(ctx context.Context, actor *domain.User, eventID, ticketTypeID string) (*RegistrationResult, error) {
	ticket, err := s.tickets.GetByIDForEvent(ctx, ticketTypeID, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("ticket type", map[string]any{"event_id": eventID})
		}
		return nil, util.MapError(err)
	}

	status := domain.PaymentStatusPending
	if ticket.IsFree() {
		status = domain.PaymentStatusPaid
	}

	code, err := generateRedemptionCode()
	if err != nil {
		return nil, util.MapError(err)
	}

	reg := &domain.Registration{
		EventID:        eventID,
		UserID:         actor.ID,
		TicketTypeID:   ticketTypeID,
		PaymentStatus:  status,
		RedemptionCode: code,
	}
	if err := s.registrations.Register(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return nil, util.NewConflict("already registered for this event", map[string]any{"event_id": eventID})
		case errors.Is(err, repository.ErrSoldOut):
			return nil, util.NewSoldOut(map[string]any{"ticket_type_id": ticketTypeID})
		case err == pgx.ErrNoRows:
			return nil, util.NewNotFound("ticket type", map[string]any{"event_id": eventID})
		}
		return nil, util.MapError(err)
	}

	result := &RegistrationResult{Registration: reg, IsFree: ticket.IsFree()}

	if !ticket.IsFree() {
		session, err := s.gateway.CreateSession(ctx, gateway.SessionRequest{
			OrderID:       BuildOrderID(reg.ID),
			GrossAmount:   ticket.Price,
			CustomerName:  actor.DisplayName,
			CustomerEmail: actor.Email,
		})
		if err != nil {
			if errors.Is(err, gateway.ErrTimeout) {
				return nil, util.NewGatewayTimeout(err)
			}
			return nil, util.MapError(err)
		}
		result.PaymentToken = session.Token
		result.RedirectURL = session.RedirectURL
	}

	s.publish(ctx, events.Event{
		Type: events.EventRegistrationCreated,
		Payload: events.RegistrationCreatedPayload{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			UserID:         reg.UserID,
			TicketTypeID:   reg.TicketTypeID,
			Status:         reg.PaymentStatus,
			IsFree:         result.IsFree,
		},
	})
	return result, nil
}

// ConfirmPayment marks a pending registration as PAID. Confirming an
// already-paid registration is a no-op.
func (s *EventService) ConfirmPayment(ctx context.Context, actor *domain.User, registrationID string) (*domain.Registration, error) {
	reg, ownerID, err := s.registrations.GetWithEventOwner(ctx, registrationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("registration", nil)
		}
		return nil, util.MapError(err)
	}
	if ownerID != actor.ID {
		return nil, util.NewForbidden("not the event owner")
	}

	switch reg.PaymentStatus {
	case domain.PaymentStatusPaid:
		return reg, nil
	case domain.PaymentStatusCancelled:
		return nil, util.NewConflict("registration is cancelled", nil)
	}

	updated, err := s.registrations.UpdateStatusFrom(ctx, reg.ID, domain.PaymentStatusPending, domain.PaymentStatusPaid)
	if err != nil {
		return nil, util.MapError(err)
	}
	if !updated {
		// lost a race with the webhook or another confirmation; re-read
		current, err := s.registrations.GetByID(ctx, reg.ID)
		if err != nil {
			return nil, util.MapError(err)
		}
		if current.PaymentStatus != domain.PaymentStatusPaid {
			return nil, util.NewConflict("registration is no longer pending", nil)
		}
		return current, nil
	}

	old := reg.PaymentStatus
	reg.PaymentStatus = domain.PaymentStatusPaid
	s.publish(ctx, events.Event{
		Type: events.EventPaymentStatusChanged,
		Payload: events.PaymentStatusChangedPayload{
			RegistrationID: reg.ID,
			OldStatus:      old,
			NewStatus:      reg.PaymentStatus,
			Source:         "organization_confirm",
		},
	})
	return reg, nil
}

// ListAttendees returns all registrations for an event the caller owns.
func (s *EventService) ListAttendees(ctx context.Context, actor *domain.User, eventID string) ([]domain.Registration, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("event", nil)
		}
		return nil, util.MapError(err)
	}
	if event.OwnerUserID != actor.ID {
		return nil, util.NewForbidden("not the event owner")
	}
	list, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return list, nil
}

// ListMyEvents returns the catalog entries owned by the caller.
func (s *EventService) ListMyEvents(ctx context.Context, actor *domain.User) ([]domain.Event, error) {
	list, err := s.eventsRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return list, nil
}

// ListMyRegistrations returns the caller's registrations, newest event first.
func (s *EventService) ListMyRegistrations(ctx context.Context, actor *domain.User) ([]domain.Registration, error) {
	if actor.Role != domain.RoleAttendee {
		return nil, util.NewForbidden("attendee role required")
	}
	list, err := s.registrations.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return list, nil
}

// BuildOrderID derives the gateway order identifier from a registration id.
func BuildOrderID(registrationID string) string {
	return orderIDPrefix + registrationID
}

// ParseOrderID recovers the registration id from a gateway order identifier.
func ParseOrderID(orderID string) (string, error) {
	id := strings.TrimPrefix(orderID, orderIDPrefix)
	if id == orderID || id == "" {
		return "", errors.New("unrecognized order id")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.New("unrecognized order id")
	}
	return id, nil
}

// generateRedemptionCode returns an unguessable check-in token. It is never
// derived from ids or timestamps.
func generateRedemptionCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

func (s *EventService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
