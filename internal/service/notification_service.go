package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/eventkampus/api/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEventCreated, n.handleEventCreated)
	n.dispatcher.Subscribe(events.EventRegistrationCreated, n.handleRegistrationCreated)
	n.dispatcher.Subscribe(events.EventPaymentStatusChanged, n.handlePaymentStatusChanged)
}

func (n *NotificationService) handleEventCreated(_ context.Context, event events.Event) error {
	n.logger.Info("EventCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRegistrationCreated(_ context.Context, event events.Event) error {
	n.logger.Info("RegistrationCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePaymentStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("PaymentStatusChanged", zap.Any("payload", event.Payload))
	return nil
}
