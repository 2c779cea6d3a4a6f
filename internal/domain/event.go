package domain

import "time"

// Event is a catalog entry owned by an ORGANIZATION user.
type Event struct {
	ID          string
	Name        string
	Description string
	PosterURL   *string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	OwnerUserID string
	// OrganizerName is denormalized from the owning user for listings.
	OrganizerName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
