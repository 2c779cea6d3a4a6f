package dto

import (
	"time"

	"github.com/eventkampus/api/internal/domain"
)

// RegisterForEventRequest payload for POST /events/:id/register.
type RegisterForEventRequest struct {
	TicketTypeID string `json:"ticket_type_id"`
}

// RegistrationResponse is the ledger projection.
type RegistrationResponse struct {
	ID             string               `json:"id"`
	EventID        string               `json:"event_id"`
	EventName      string               `json:"event_name,omitempty"`
	TicketTypeID   string               `json:"ticket_type_id"`
	TicketTypeName string               `json:"ticket_type_name,omitempty"`
	PaymentStatus  domain.PaymentStatus `json:"payment_status"`
	RedemptionCode string               `json:"redemption_code"`
	CreatedAt      time.Time            `json:"created_at"`
}

// RegisterForEventResponse adds the payment handle for paid tiers.
type RegisterForEventResponse struct {
	Registration RegistrationResponse `json:"registration"`
	IsFree       bool                 `json:"isFree"`
	PaymentToken string               `json:"paymentToken,omitempty"`
	RedirectURL  string               `json:"redirectUrl,omitempty"`
}

// AttendeeResponse is what organizers see per registration.
type AttendeeResponse struct {
	RegistrationID string               `json:"registration_id"`
	AttendeeName   string               `json:"attendee_name"`
	AttendeeEmail  string               `json:"attendee_email"`
	TicketTypeName string               `json:"ticket_type_name"`
	PaymentStatus  domain.PaymentStatus `json:"payment_status"`
	RedemptionCode string               `json:"redemption_code"`
	RegisteredAt   time.Time            `json:"registered_at"`
}

// NewRegistrationResponse maps the domain model.
func NewRegistrationResponse(reg *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:             reg.ID,
		EventID:        reg.EventID,
		EventName:      reg.EventName,
		TicketTypeID:   reg.TicketTypeID,
		TicketTypeName: reg.TicketTypeName,
		PaymentStatus:  reg.PaymentStatus,
		RedemptionCode: reg.RedemptionCode,
		CreatedAt:      reg.CreatedAt,
	}
}

// NewAttendeeResponse maps a joined ledger row.
func NewAttendeeResponse(reg *domain.Registration) AttendeeResponse {
	return AttendeeResponse{
		RegistrationID: reg.ID,
		AttendeeName:   reg.AttendeeName,
		AttendeeEmail:  reg.AttendeeEmail,
		TicketTypeName: reg.TicketTypeName,
		PaymentStatus:  reg.PaymentStatus,
		RedemptionCode: reg.RedemptionCode,
		RegisteredAt:   reg.CreatedAt,
	}
}
