package domain

import "time"

// PaymentStatus enumerates the registration ledger states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Registration pairs a user with an event and a chosen ticket type.
// At most one registration exists per (user, event); rows are never deleted.
type Registration struct {
	ID             string
	EventID        string
	UserID         string
	TicketTypeID   string
	PaymentStatus  PaymentStatus
	RedemptionCode string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Display fields joined in by list queries.
	EventName      string
	TicketTypeName string
	AttendeeName   string
	AttendeeEmail  string
}

var allowedPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusCancelled},
	PaymentStatusPaid:      {},
	PaymentStatusCancelled: {},
}

// CanTransition reports whether moving the ledger from current to next is
// legal. PAID and CANCELLED are terminal; stale or replayed gateway
// notifications must not revert them.
func CanTransition(current, next PaymentStatus) bool {
	for _, candidate := range allowedPaymentTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
