package domain

import "time"

// Role separates attendees from event-owning organizations.
type Role string

const (
	RoleAttendee     Role = "ATTENDEE"
	RoleOrganization Role = "ORGANIZATION"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAttendee || r == RoleOrganization
}

// User is the domain model for registered accounts. The role is fixed at
// registration; there is no role-change flow.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
