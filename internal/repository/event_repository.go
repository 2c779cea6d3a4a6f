package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/eventkampus/api/internal/domain"
)

// EventRepository encapsulates event catalog persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Event, error)
}

type eventRepository struct {
	db DB
}

// NewEventRepository instantiates repository.
func NewEventRepository(db DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (name, description, poster_url, start_time, end_time, location, owner_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		event.Name,
		event.Description,
		event.PosterURL,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.OwnerUserID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

const eventSelect = `
        SELECT e.id, e.name, e.description, e.poster_url, e.start_time, e.end_time,
               e.location, e.owner_user_id, u.display_name, e.created_at, e.updated_at
        FROM events e
        JOIN users u ON u.id = e.owner_user_id`

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.QueryRow(ctx, eventSelect+` WHERE e.id=$1`, id).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.PosterURL,
		&event.StartTime,
		&event.EndTime,
		&event.Location,
		&event.OwnerUserID,
		&event.OrganizerName,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` ORDER BY e.start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` WHERE e.owner_user_id=$1 ORDER BY e.start_time ASC`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Description,
			&event.PosterURL,
			&event.StartTime,
			&event.EndTime,
			&event.Location,
			&event.OwnerUserID,
			&event.OrganizerName,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
