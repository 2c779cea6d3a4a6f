package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventkampus/api/internal/domain"
)

var (
	// ErrSoldOut indicates the ticket type's quota is exhausted.
	ErrSoldOut = errors.New("ticket type sold out")
	// ErrAlreadyRegistered indicates a registration already exists for the
	// (user, event) pair.
	ErrAlreadyRegistered = errors.New("user already registered for event")
)

const uniqueViolation = "23505"

// RegistrationRepository encapsulates the registration ledger.
type RegistrationRepository interface {
	// Register inserts the registration inside a single transaction that
	// locks the ticket-type row, so two concurrent attempts for the last
	// remaining slot cannot both pass the capacity check.
	Register(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	// GetWithEventOwner returns the registration plus the owning
	// organization's user id, for ownership checks via a single join.
	GetWithEventOwner(ctx context.Context, id string) (*domain.Registration, string, error)
	// UpdateStatusFrom moves the ledger status only when the current status
	// matches from; it reports whether a row was updated.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
}

type registrationRepository struct {
	db DB
}

// NewRegistrationRepository instantiates repository.
func NewRegistrationRepository(db DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the ticket-type row; serializes concurrent registrations for the
	// same tier. Also confirms the ticket belongs to the given event.
	var quota int
	err = tx.QueryRow(ctx,
		`SELECT quota FROM ticket_types WHERE id=$1 AND event_id=$2 FOR UPDATE`,
		reg.TicketTypeID, reg.EventID,
	).Scan(&quota)
	if err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id=$1 AND user_id=$2)`,
		reg.EventID, reg.UserID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}

	var taken int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE ticket_type_id=$1 AND payment_status <> $2`,
		reg.TicketTypeID, domain.PaymentStatusCancelled,
	).Scan(&taken)
	if err != nil {
		return err
	}
	if taken >= quota {
		return ErrSoldOut
	}

	const insert = `
        INSERT INTO registrations (event_id, user_id, ticket_type_id, payment_status, redemption_code)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insert,
		reg.EventID,
		reg.UserID,
		reg.TicketTypeID,
		reg.PaymentStatus,
		reg.RedemptionCode,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyRegistered
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	const query = `
        SELECT id, event_id, user_id, ticket_type_id, payment_status, redemption_code, created_at, updated_at
        FROM registrations WHERE id=$1`

	var reg domain.Registration
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.TicketTypeID,
		&reg.PaymentStatus,
		&reg.RedemptionCode,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) GetWithEventOwner(ctx context.Context, id string) (*domain.Registration, string, error) {
	const query = `
        SELECT r.id, r.event_id, r.user_id, r.ticket_type_id, r.payment_status,
               r.redemption_code, r.created_at, r.updated_at, e.owner_user_id
        FROM registrations r
        JOIN events e ON e.id = r.event_id
        WHERE r.id=$1`

	var reg domain.Registration
	var ownerID string
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.TicketTypeID,
		&reg.PaymentStatus,
		&reg.RedemptionCode,
		&reg.CreatedAt,
		&reg.UpdatedAt,
		&ownerID,
	); err != nil {
		return nil, "", err
	}
	return &reg, ownerID, nil
}

func (r *registrationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error) {
	const query = `
        UPDATE registrations SET payment_status=$1, updated_at=NOW()
        WHERE id=$2 AND payment_status=$3`
	cmd, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	const query = `
        SELECT r.id, r.event_id, r.user_id, r.ticket_type_id, r.payment_status,
               r.redemption_code, r.created_at, r.updated_at,
               e.name, t.name, u.display_name, u.email
        FROM registrations r
        JOIN events e ON e.id = r.event_id
        JOIN ticket_types t ON t.id = r.ticket_type_id
        JOIN users u ON u.id = r.user_id
        WHERE r.event_id=$1
        ORDER BY r.created_at ASC`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	const query = `
        SELECT r.id, r.event_id, r.user_id, r.ticket_type_id, r.payment_status,
               r.redemption_code, r.created_at, r.updated_at,
               e.name, t.name, u.display_name, u.email
        FROM registrations r
        JOIN events e ON e.id = r.event_id
        JOIN ticket_types t ON t.id = r.ticket_type_id
        JOIN users u ON u.id = r.user_id
        WHERE r.user_id=$1
        ORDER BY e.start_time DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func scanRegistrations(rows pgx.Rows) ([]domain.Registration, error) {
	var result []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.TicketTypeID,
			&reg.PaymentStatus,
			&reg.RedemptionCode,
			&reg.CreatedAt,
			&reg.UpdatedAt,
			&reg.EventName,
			&reg.TicketTypeName,
			&reg.AttendeeName,
			&reg.AttendeeEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
