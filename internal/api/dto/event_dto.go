package dto

import (
	"time"

	"github.com/eventkampus/api/internal/domain"
)

// CreateEventRequest payload for a new catalog entry.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PosterURL   *string   `json:"poster_url"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
}

// CreateTicketTypeRequest payload for a new tier.
type CreateTicketTypeRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Quota int    `json:"quota"`
}

// EventResponse is the catalog projection.
type EventResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Location      string    `json:"location"`
	OrganizerName string    `json:"organizer_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// TicketTypeResponse is the tier projection.
type TicketTypeResponse struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Quota   int    `json:"quota"`
}

// EventDetailResponse bundles an event with its tiers.
type EventDetailResponse struct {
	Event   EventResponse        `json:"event"`
	Tickets []TicketTypeResponse `json:"tickets"`
}

// NewEventResponse maps the domain model.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:            event.ID,
		Name:          event.Name,
		Description:   event.Description,
		PosterURL:     event.PosterURL,
		StartTime:     event.StartTime,
		EndTime:       event.EndTime,
		Location:      event.Location,
		OrganizerName: event.OrganizerName,
		CreatedAt:     event.CreatedAt,
	}
}

// NewTicketTypeResponse maps the domain model.
func NewTicketTypeResponse(ticket *domain.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:      ticket.ID,
		EventID: ticket.EventID,
		Name:    ticket.Name,
		Price:   ticket.Price,
		Quota:   ticket.Quota,
	}
}
