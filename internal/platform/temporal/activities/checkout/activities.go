package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

const (
	// CreateOrderActivityName submits the order to the storefront API.
	CreateOrderActivityName = "checkout.activities.CreateOrder"
	// ConfirmPaymentActivityName confirms the card payment for a created order.
	ConfirmPaymentActivityName = "checkout.activities.ConfirmPayment"

	// OrderFailedErrorType tags activity failures of the create-order step.
	OrderFailedErrorType = "OrderFailed"
	// PaymentFailedErrorType tags activity failures of the payment step.
	PaymentFailedErrorType = "PaymentFailed"
)

// PaymentInput identifies the payment to confirm.
type PaymentInput struct {
	OrderID        string
	ClientSecret   string
	IdempotencyKey string
}

// RemoteFailure rides along as the details of a failed activity so the caller keeps the
// HTTP status the storefront or payment API answered with.
type RemoteFailure struct {
	StatusCode int
	Message    string
}

func nonRetryable(errType string, err error) error {
	details := RemoteFailure{StatusCode: sharederrors.StatusCode(err), Message: sharederrors.ServerMessage(err)}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err, details)
}

// Activities groups the checkout steps executed by the worker.
type Activities struct {
	orders   ports.OrderGateway
	payments ports.PaymentConfirmer
}

// NewActivities wires the checkout collaborators into the Temporal activities bundle.
func NewActivities(orders ports.OrderGateway, payments ports.PaymentConfirmer) *Activities {
	return &Activities{orders: orders, payments: payments}
}

// CreateOrder submits the order and returns what the server placed.
func (a *Activities) CreateOrder(ctx context.Context, cmd domain.Command) (domain.Placement, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("create order activity not initialized")
		return domain.Placement{}, errors.New("create order activity not initialized")
	}
	logger.Info("CreateOrder activity started", "lines", len(cmd.Lines), "paymentMethod", string(cmd.PaymentMethod))
	placement, err := a.orders.CreateOrder(ctx, cmd)
	if err != nil {
		logger.Error("CreateOrder activity failed", "error", err)
		return domain.Placement{}, nonRetryable(OrderFailedErrorType, err)
	}
	logger.Info("CreateOrder activity completed", "orderId", placement.OrderID)
	return placement, nil
}

// ConfirmPayment confirms the card payment for a created order.
func (a *Activities) ConfirmPayment(ctx context.Context, input PaymentInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.payments == nil {
		logger.Error("confirm payment activity not initialized", "orderId", input.OrderID)
		return temporal.NewNonRetryableApplicationError("card payments are not configured", PaymentFailedErrorType, nil)
	}
	logger.Info("ConfirmPayment activity started", "orderId", input.OrderID)
	if err := a.payments.Confirm(ctx, input.ClientSecret, input.IdempotencyKey); err != nil {
		logger.Error("ConfirmPayment activity failed", "orderId", input.OrderID, "error", err)
		return nonRetryable(PaymentFailedErrorType, err)
	}
	logger.Info("ConfirmPayment activity completed", "orderId", input.OrderID)
	return nil
}
