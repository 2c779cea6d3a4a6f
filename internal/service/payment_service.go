package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/eventkampus/api/internal/domain"
	"github.com/eventkampus/api/internal/events"
	"github.com/eventkampus/api/internal/gateway"
	"github.com/eventkampus/api/internal/repository"
)

// PaymentService reconciles asynchronous gateway notifications against the
// registration ledger.
type PaymentService struct {
	registrations repository.RegistrationRepository
	serverKey     string
	logger        *zap.Logger
	dispatcher    events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(registrations repository.RegistrationRepository, serverKey string, logger *zap.Logger, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{
		registrations: registrations,
		serverKey:     serverKey,
		logger:        logger,
		dispatcher:    dispatcher,
	}
}

// HandleNotification applies a gateway notification to the ledger. Errors
// are returned for logging only; the HTTP handler acknowledges the gateway
// regardless, to avoid retry storms.
func (s *PaymentService) HandleNotification(ctx context.Context, n gateway.Notification) error {
	if s.serverKey != "" && !gateway.VerifySignature(n, s.serverKey) {
		s.logger.Warn("payment notification signature missing or mismatched", zap.String("order_id", n.OrderID))
		return errors.New("invalid notification signature")
	}

	registrationID, err := ParseOrderID(n.OrderID)
	if err != nil {
		s.logger.Warn("payment notification with unrecognized order id", zap.String("order_id", n.OrderID))
		return err
	}

	target, actionable := mapGatewayStatus(n.TransactionStatus, n.FraudStatus)
	if !actionable {
		s.logger.Info("payment notification ignored",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
			zap.String("fraud_status", n.FraudStatus))
		return nil
	}

	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Warn("payment notification for unknown registration", zap.String("registration_id", registrationID))
			return err
		}
		return err
	}

	if reg.PaymentStatus == target {
		return nil
	}
	if !domain.CanTransition(reg.PaymentStatus, target) {
		// stale or replayed notification against a terminal status
		s.logger.Warn("illegal payment transition ignored",
			zap.String("registration_id", reg.ID),
			zap.String("current", string(reg.PaymentStatus)),
			zap.String("target", string(target)))
		return nil
	}

	updated, err := s.registrations.UpdateStatusFrom(ctx, reg.ID, reg.PaymentStatus, target)
	if err != nil {
		return err
	}
	if !updated {
		// status moved underneath us; the next notification will reconcile
		s.logger.Info("payment status changed concurrently", zap.String("registration_id", reg.ID))
		return nil
	}

	s.logger.Info("payment status updated",
		zap.String("registration_id", reg.ID),
		zap.String("old", string(reg.PaymentStatus)),
		zap.String("new", string(target)))

	s.publish(ctx, events.Event{
		Type: events.EventPaymentStatusChanged,
		Payload: events.PaymentStatusChangedPayload{
			RegistrationID: reg.ID,
			OldStatus:      reg.PaymentStatus,
			NewStatus:      target,
			Source:         "gateway_notification",
		},
	})
	return nil
}

// mapGatewayStatus translates the gateway vocabulary into ledger statuses.
// The second return is false for statuses that must not change the ledger.
func mapGatewayStatus(transactionStatus, fraudStatus string) (domain.PaymentStatus, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return domain.PaymentStatusPaid, true
		}
		return "", false
	case "settlement":
		return domain.PaymentStatusPaid, true
	case "pending":
		return "", false
	case "cancel", "deny", "expire":
		return domain.PaymentStatusCancelled, true
	default:
		return "", false
	}
}

func (s *PaymentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
