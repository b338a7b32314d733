package checkout

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	checkoutactivities "github.com/Apurer/go-water-storefront/internal/platform/temporal/activities/checkout"
)

const (
	// PlaceOrderWorkflowName is the public identifier for registering the workflow.
	PlaceOrderWorkflowName = "checkout.workflows.PlaceOrder"
	// TaskQueue is the queue consumed by the worker processing checkout workflows.
	TaskQueue = "CHECKOUT"
)

// PlaceOrderInput carries the checkout command. The bearer token travels in workflow history.
type PlaceOrderInput struct {
	Command domain.Command
	TraceID string
}

// PlaceOrderWorkflow creates the order and, for card orders, confirms the payment.
// Neither step is retried: a repeated create-order would place a second order.
func PlaceOrderWorkflow(ctx workflow.Context, input PlaceOrderInput) (domain.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	cmd := input.Command
	logger.Info("PlaceOrderWorkflow started", withTraceID(input.TraceID, "paymentMethod", string(cmd.PaymentMethod))...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var placement domain.Placement
	if err := workflow.ExecuteActivity(ctx, checkoutactivities.CreateOrderActivityName, cmd).Get(ctx, &placement); err != nil {
		logger.Error("PlaceOrderWorkflow create order failed", withTraceID(input.TraceID, "error", err)...)
		return domain.Receipt{}, err
	}
	if !cmd.PaymentMethod.RequiresConfirmation() {
		logger.Info("PlaceOrderWorkflow completed", withTraceID(input.TraceID, "orderId", placement.OrderID)...)
		return domain.NewReceipt(cmd, placement, false), nil
	}
	if placement.ClientSecret == "" {
		logger.Error("PlaceOrderWorkflow missing payment client secret", withTraceID(input.TraceID, "orderId", placement.OrderID)...)
		return domain.Receipt{}, temporal.NewNonRetryableApplicationError(
			"order "+placement.OrderID+" has no payment client secret",
			checkoutactivities.PaymentFailedErrorType,
			nil,
		)
	}
	payment := checkoutactivities.PaymentInput{
		OrderID:        placement.OrderID,
		ClientSecret:   placement.ClientSecret,
		IdempotencyKey: cmd.IdempotencyKey,
	}
	if err := workflow.ExecuteActivity(ctx, checkoutactivities.ConfirmPaymentActivityName, payment).Get(ctx, nil); err != nil {
		logger.Error("PlaceOrderWorkflow payment failed", withTraceID(input.TraceID, "orderId", placement.OrderID, "error", err)...)
		return domain.Receipt{}, err
	}
	logger.Info("PlaceOrderWorkflow completed", withTraceID(input.TraceID, "orderId", placement.OrderID, "paid", true)...)
	return domain.NewReceipt(cmd, placement, true), nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
