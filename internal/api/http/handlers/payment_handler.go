package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eventkampus/api/internal/gateway"
	"github.com/eventkampus/api/internal/service"
)

// PaymentHandler receives asynchronous notifications from the payment
// gateway.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *zap.Logger
}

// NewPaymentHandler constructs handler.
func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: paymentService, logger: logger}
}

// Notification POST /payment/notification. Always acknowledges with 200,
// even on internal failure, so the gateway does not amplify retries.
// Failures are logged for operator follow-up.
func (h *PaymentHandler) Notification(c *fiber.Ctx) error {
	var n gateway.Notification
	if err := c.BodyParser(&n); err != nil {
		h.logger.Warn("unparseable payment notification", zap.Error(err))
		return c.JSON(fiber.Map{"status": "ok"})
	}

	if err := h.service.HandleNotification(c.UserContext(), n); err != nil {
		h.logger.Error("payment notification processing failed",
			zap.String("order_id", n.OrderID),
			zap.Error(err))
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
