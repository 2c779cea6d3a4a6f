package repository

import (
	"context"

	"github.com/eventkampus/api/internal/domain"
)

// TicketTypeRepository encapsulates ticket tier persistence.
type TicketTypeRepository interface {
	Create(ctx context.Context, ticket *domain.TicketType) error
	GetByIDForEvent(ctx context.Context, id, eventID string) (*domain.TicketType, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

type ticketTypeRepository struct {
	db DB
}

// NewTicketTypeRepository instantiates repository.
func NewTicketTypeRepository(db DB) TicketTypeRepository {
	return &ticketTypeRepository{db: db}
}

func (r *ticketTypeRepository) Create(ctx context.Context, ticket *domain.TicketType) error {
	const query = `
        INSERT INTO ticket_types (event_id, name, price, quota)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		ticket.EventID,
		ticket.Name,
		ticket.Price,
		ticket.Quota,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketTypeRepository) GetByIDForEvent(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
	const query = `
        SELECT id, event_id, name, price, quota, created_at
        FROM ticket_types WHERE id=$1 AND event_id=$2`

	var ticket domain.TicketType
	if err := r.db.QueryRow(ctx, query, id, eventID).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Price,
		&ticket.Quota,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketTypeRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const query = `
        SELECT id, event_id, name, price, quota, created_at
        FROM ticket_types WHERE event_id=$1 ORDER BY price ASC, name ASC`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketType
	for rows.Next() {
		var ticket domain.TicketType
		if err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.Name,
			&ticket.Price,
			&ticket.Quota,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
