package domain

import "time"

// TicketType describes one purchasable tier of an event. Price is an
// integer amount in the currency's minor unit; zero means free entry.
type TicketType struct {
	ID        string
	EventID   string
	Name      string
	Price     int64
	Quota     int
	CreatedAt time.Time
}

// IsFree reports whether registering for this tier skips payment.
func (t TicketType) IsFree() bool {
	return t.Price == 0
}
