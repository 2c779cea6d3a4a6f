package events

import (
	"time"

	"github.com/eventkampus/api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEventCreated         EventType = "event_created"
	EventRegistrationCreated  EventType = "registration_created"
	EventPaymentStatusChanged EventType = "payment_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EventCreatedPayload payload.
type EventCreatedPayload struct {
	EventID     string `json:"event_id"`
	OwnerUserID string `json:"owner_user_id"`
	Name        string `json:"name"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	RegistrationID string               `json:"registration_id"`
	EventID        string               `json:"event_id"`
	UserID         string               `json:"user_id"`
	TicketTypeID   string               `json:"ticket_type_id"`
	Status         domain.PaymentStatus `json:"status"`
	IsFree         bool                 `json:"is_free"`
}

// PaymentStatusChangedPayload payload.
type PaymentStatusChangedPayload struct {
	RegistrationID string               `json:"registration_id"`
	OldStatus      domain.PaymentStatus `json:"old_status"`
	NewStatus      domain.PaymentStatus `json:"new_status"`
	Source         string               `json:"source"`
}
