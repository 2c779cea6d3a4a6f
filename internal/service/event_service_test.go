package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventkampus/api/internal/domain"
	"github.com/eventkampus/api/internal/gateway"
	"github.com/eventkampus/api/internal/repository"
)

var (
	attendee = &domain.User{
		ID:          "attendee-1",
		Email:       "alice@campus.test",
		DisplayName: "Alice",
		Role:        domain.RoleAttendee,
	}
	organizer = &domain.User{
		ID:          "org-1",
		Email:       "bem@campus.test",
		DisplayName: "BEM Kampus",
		Role:        domain.RoleOrganization,
	}
)

func validEventInput() EventCreateInput {
	start := time.Now().Add(24 * time.Hour)
	return EventCreateInput{
		Name:        "Tech Seminar",
		Description: "A full day of talks about campus technology.",
		StartTime:   start,
		EndTime:     start.Add(4 * time.Hour),
		Location:    "Auditorium A",
	}
}

func TestCreateEventRequiresOrganizationRole(t *testing.T) {
	svc := NewEventService(EventDependencies{})

	_, err := svc.CreateEvent(context.Background(), attendee, validEventInput())
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestCreateEventValidatesTimeWindow(t *testing.T) {
	svc := NewEventService(EventDependencies{})

	input := validEventInput()
	input.EndTime = input.StartTime.Add(-time.Hour)
	_, err := svc.CreateEvent(context.Background(), organizer, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestCreateEventStampsOwner(t *testing.T) {
	var created *domain.Event
	svc := NewEventService(EventDependencies{
		EventRepo: &mockEventRepo{
			create: func(ctx context.Context, event *domain.Event) error {
				event.ID = "event-1"
				created = event
				return nil
			},
		},
	})

	event, err := svc.CreateEvent(context.Background(), organizer, validEventInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, organizer.ID, event.OwnerUserID)
	assert.Equal(t, organizer.DisplayName, event.OrganizerName)
}

func TestAddTicketTypeDistinguishesMissingFromForeign(t *testing.T) {
	svc := NewEventService(EventDependencies{
		EventRepo: &mockEventRepo{
			getByID: func(ctx context.Context, id string) (*domain.Event, error) {
				if id == "missing" {
					return nil, pgx.ErrNoRows
				}
				return &domain.Event{ID: id, OwnerUserID: "someone-else"}, nil
			},
		},
	})

	input := TicketTypeInput{Name: "Regular", Price: 50000, Quota: 100}

	_, err := svc.AddTicketType(context.Background(), organizer, "missing", input)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	_, err = svc.AddTicketType(context.Background(), organizer, "event-1", input)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestAddTicketTypeValidatesInput(t *testing.T) {
	svc := NewEventService(EventDependencies{
		EventRepo: &mockEventRepo{
			getByID: func(ctx context.Context, id string) (*domain.Event, error) {
				return &domain.Event{ID: id, OwnerUserID: organizer.ID}, nil
			},
		},
	})

	_, err := svc.AddTicketType(context.Background(), organizer, "event-1", TicketTypeInput{Name: "VIP", Price: -1, Quota: 10})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.AddTicketType(context.Background(), organizer, "event-1", TicketTypeInput{Name: "VIP", Price: 0, Quota: 0})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRegisterFreeTicketIsPaidImmediately(t *testing.T) {
	gatewayCalled := false
	svc := NewEventService(EventDependencies{
		TicketTypeRepo: &mockTicketTypeRepo{
			getByIDForEvent: func(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
				return &domain.TicketType{ID: id, EventID: eventID, Name: "Free Pass", Price: 0, Quota: 100}, nil
			},
		},
		RegistrationRepo: &mockRegistrationRepo{
			register: func(ctx context.Context, reg *domain.Registration) error {
				reg.ID = uuid.NewString()
				return nil
			},
		},
		Gateway: &mockGateway{
			createSession: func(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
				gatewayCalled = true
				return &gateway.Session{Token: "tok"}, nil
			},
		},
	})

	result, err := svc.Register(context.Background(), attendee, "event-1", "tt-free")
	require.NoError(t, err)
	assert.True(t, result.IsFree)
	assert.Equal(t, domain.PaymentStatusPaid, result.Registration.PaymentStatus)
	assert.Empty(t, result.PaymentToken)
	assert.False(t, gatewayCalled)
	assert.Len(t, result.Registration.RedemptionCode, 32)
}

func TestRegisterPaidTicketOpensGatewaySession(t *testing.T) {
	var sessionReq gateway.SessionRequest
	svc := NewEventService(EventDependencies{
		TicketTypeRepo: &mockTicketTypeRepo{
			getByIDForEvent: func(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
				return &domain.TicketType{ID: id, EventID: eventID, Name: "Regular", Price: 50000, Quota: 100}, nil
			},
		},
		RegistrationRepo: &mockRegistrationRepo{
			register: func(ctx context.Context, reg *domain.Registration) error {
				reg.ID = uuid.NewString()
				return nil
			},
		},
		Gateway: &mockGateway{
			createSession: func(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
				sessionReq = req
				return &gateway.Session{Token: "snap-token", RedirectURL: "https://pay.example/redirect"}, nil
			},
		},
	})

	result, err := svc.Register(context.Background(), attendee, "event-1", "tt-regular")
	require.NoError(t, err)
	assert.False(t, result.IsFree)
	assert.Equal(t, domain.PaymentStatusPending, result.Registration.PaymentStatus)
	assert.Equal(t, "snap-token", result.PaymentToken)
	assert.Equal(t, "https://pay.example/redirect", result.RedirectURL)

	assert.Equal(t, int64(50000), sessionReq.GrossAmount)
	assert.Equal(t, attendee.Email, sessionReq.CustomerEmail)
	parsed, err := ParseOrderID(sessionReq.OrderID)
	require.NoError(t, err)
	assert.Equal(t, result.Registration.ID, parsed)
}

func TestRegisterMapsRepositorySentinels(t *testing.T) {
	cases := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"sold out", repository.ErrSoldOut, "SOLD_OUT"},
		{"duplicate", repository.ErrAlreadyRegistered, "CONFLICT"},
		{"unknown ticket", pgx.ErrNoRows, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewEventService(EventDependencies{
				TicketTypeRepo: &mockTicketTypeRepo{
					getByIDForEvent: func(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
						return &domain.TicketType{ID: id, EventID: eventID, Price: 50000, Quota: 1}, nil
					},
				},
				RegistrationRepo: &mockRegistrationRepo{
					register: func(ctx context.Context, reg *domain.Registration) error {
						return tc.repoErr
					},
				},
			})

			_, err := svc.Register(context.Background(), attendee, "event-1", "tt-1")
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, domainCode(t, err))
		})
	}
}

func TestRegisterGatewayTimeout(t *testing.T) {
	svc := NewEventService(EventDependencies{
		TicketTypeRepo: &mockTicketTypeRepo{
			getByIDForEvent: func(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
				return &domain.TicketType{ID: id, EventID: eventID, Price: 50000, Quota: 10}, nil
			},
		},
		RegistrationRepo: &mockRegistrationRepo{
			register: func(ctx context.Context, reg *domain.Registration) error {
				reg.ID = uuid.NewString()
				return nil
			},
		},
		Gateway: &mockGateway{
			createSession: func(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
				return nil, gateway.ErrTimeout
			},
		},
	})

	_, err := svc.Register(context.Background(), attendee, "event-1", "tt-1")
	require.Error(t, err)
	assert.Equal(t, "GATEWAY_TIMEOUT", domainCode(t, err))
}

func TestRegisterUnknownTicketType(t *testing.T) {
	svc := NewEventService(EventDependencies{
		TicketTypeRepo: &mockTicketTypeRepo{
			getByIDForEvent: func(ctx context.Context, id, eventID string) (*domain.TicketType, error) {
				return nil, pgx.ErrNoRows
			},
		},
	})

	_, err := svc.Register(context.Background(), attendee, "event-1", "tt-ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestRedemptionCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generateRedemptionCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate redemption code %s", code)
		seen[code] = true
	}
}

func TestConfirmPaymentMarksPendingAsPaid(t *testing.T) {
	regID := uuid.NewString()
	var gotFrom, gotTo domain.PaymentStatus
	svc := NewEventService(EventDependencies{
		RegistrationRepo: &mockRegistrationRepo{
			getWithEventOwner: func(ctx context.Context, id string) (*domain.Registration, string, error) {
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusPending}, organizer.ID, nil
			},
			updateStatusFrom: func(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error) {
				gotFrom, gotTo = from, to
				return true, nil
			},
		},
	})

	reg, err := svc.ConfirmPayment(context.Background(), organizer, regID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, reg.PaymentStatus)
	assert.Equal(t, domain.PaymentStatusPending, gotFrom)
	assert.Equal(t, domain.PaymentStatusPaid, gotTo)
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	updateCalls := 0
	svc := NewEventService(EventDependencies{
		RegistrationRepo: &mockRegistrationRepo{
			getWithEventOwner: func(ctx context.Context, id string) (*domain.Registration, string, error) {
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusPaid}, organizer.ID, nil
			},
			updateStatusFrom: func(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error) {
				updateCalls++
				return true, nil
			},
		},
	})

	reg, err := svc.ConfirmPayment(context.Background(), organizer, "reg-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, reg.PaymentStatus)
	assert.Zero(t, updateCalls)
}

func TestConfirmPaymentRejectsCancelled(t *testing.T) {
	svc := NewEventService(EventDependencies{
		RegistrationRepo: &mockRegistrationRepo{
			getWithEventOwner: func(ctx context.Context, id string) (*domain.Registration, string, error) {
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusCancelled}, organizer.ID, nil
			},
		},
	})

	_, err := svc.ConfirmPayment(context.Background(), organizer, "reg-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestConfirmPaymentRequiresOwnership(t *testing.T) {
	svc := NewEventService(EventDependencies{
		RegistrationRepo: &mockRegistrationRepo{
			getWithEventOwner: func(ctx context.Context, id string) (*domain.Registration, string, error) {
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusPending}, "other-org", nil
			},
		},
	})

	_, err := svc.ConfirmPayment(context.Background(), organizer, "reg-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestConfirmPaymentLostRaceReReads(t *testing.T) {
	svc := NewEventService(EventDependencies{
		RegistrationRepo: &mockRegistrationRepo{
			getWithEventOwner: func(ctx context.Context, id string) (*domain.Registration, string, error) {
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusPending}, organizer.ID, nil
			},
			updateStatusFrom: func(ctx context.Context, id string, from, to domain.PaymentStatus) (bool, error) {
				return false, nil
			},
			getByID: func(ctx context.Context, id string) (*domain.Registration, error) {
				// the webhook settled the payment first
				return &domain.Registration{ID: id, PaymentStatus: domain.PaymentStatusPaid}, nil
			},
		},
	})

	reg, err := svc.ConfirmPayment(context.Background(), organizer, "reg-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, reg.PaymentStatus)
}

func TestListAttendeesRequiresOwnership(t *testing.T) {
	svc := NewEventService(EventDependencies{
		EventRepo: &mockEventRepo{
			getByID: func(ctx context.Context, id string) (*domain.Event, error) {
				return &domain.Event{ID: id, OwnerUserID: "other-org"}, nil
			},
		},
	})

	_, err := svc.ListAttendees(context.Background(), organizer, "event-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestListMyRegistrationsRequiresAttendeeRole(t *testing.T) {
	svc := NewEventService(EventDependencies{})

	_, err := svc.ListMyRegistrations(context.Background(), organizer)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestOrderIDRoundTrip(t *testing.T) {
	id := uuid.NewString()
	parsed, err := ParseOrderID(BuildOrderID(id))
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "EVK-", "EVK-not-a-uuid", uuid.NewString()} {
		_, err := ParseOrderID(bad)
		assert.Error(t, err, "order id %q should be rejected", bad)
	}
}
