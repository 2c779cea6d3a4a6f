package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/eventkampus/api/internal/domain"
	"github.com/eventkampus/api/internal/gateway"
)

type mockUserRepo struct {
	create     func(ctx context.Context, user *domain.User) error
	getByID    func(ctx context.Context, id string) (*domain.User, error)
	getByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.create(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmail(ctx, email)
}

type mockEventRepo struct {
	create      func(ctx context.Context, event *domain.Event) error
	getByID     func(ctx context.Context, id string) (*domain.Event, error)
	listAll     func(ctx context.Context) ([]domain.Event, error)
	listByOwner func(ctx context.Context, ownerUserID string) ([]domain.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	return m.create(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return m.getByID(ctx, id)
}

func (m *mockEventRepo) ListAll(ctx context.Context) ([]domain.Event, error) {
	return m.listAll(ctx)
}

func (m *mockEventRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Event, error) {
	return m.listByOwner(ctx, ownerUserID)
}

type mockTicketTypeRepo struct {
	create          func(ctx context.Context, ticket *domain.TicketType) error
	getByIDForEvent func(ctx context.Context, id, eventID string) (*domain.TicketType, error)
	listByEvent     func(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

func (m *mockTicketTypeRepo) Create(ctx context.Context, ticket *domain.TicketType) error {
	return m.create(ctx, ticket)
}

func (m *mockTicketTypeRepo) GetByIDForEvent(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
	return m.getByIDForEvent(ctx, id, eventID)
}

func (m *mockTicketTypeRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	return m.listByEvent(ctx, eventID)
}

type mockRegistrationRepo struct {
	register          func(ctx context.Context, reg *domain.Registration) error
	getByID           func(ctx context.Context, id string) (*domain.Registration, error)
	getWithEventOwner func(ctx context.Context, id string) (*domain.Registration, string, error)
	updateStatusFrom  func(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error)
	listByEvent       func(ctx context.Context, eventID string) ([]domain.Registration, error)
	listByUser        func(ctx context.Context, userID string) ([]domain.Registration, error)
}

func (m *mockRegistrationRepo) Register(ctx context.Context, reg *domain.Registration) error {
	return m.register(ctx, reg)
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return m.getByID(ctx, id)
}

func (m *mockRegistrationRepo) GetWithEventOwner(ctx context.Context, id string) (*domain.Registration, string, error) {
	return m.getWithEventOwner(ctx, id)
}

func (m *mockRegistrationRepo) UpdateStatusFrom(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error) {
	return m.updateStatusFrom(ctx, id, from, to)
}

func (m *mockRegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return m.listByEvent(ctx, eventID)
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return m.listByUser(ctx, userID)
}

type mockGateway struct {
	createSession func(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error)
}

func (m *mockGateway) CreateSession(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
	return m.createSession(ctx, req)
}

// noRowsUserRepo is a user repo where every lookup misses.
func noRowsUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByID: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		getByEmail: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
}
