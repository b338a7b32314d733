package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	checkoutactivities "github.com/Apurer/go-water-storefront/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-water-storefront/internal/platform/temporal/workflows/checkout"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

var (
	_ ports.Orchestrator = (*TemporalOrchestrator)(nil)
	_ ports.Orchestrator = (*InlineOrchestrator)(nil)
)

// TemporalOrchestrator runs checkout as a Temporal workflow.
type TemporalOrchestrator struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrchestrator wires a Temporal client into the orchestrator.
func NewTemporalOrchestrator(c client.Client) *TemporalOrchestrator {
	return &TemporalOrchestrator{client: c, taskQueue: checkoutworkflows.TaskQueue}
}

// PlaceOrder starts the workflow and waits for its receipt. A command resubmitted with the
// same idempotency key attaches to the run already in flight.
func (o *TemporalOrchestrator) PlaceOrder(ctx context.Context, cmd domain.Command) (domain.Receipt, error) {
	if o == nil || o.client == nil {
		return domain.Receipt{}, errors.New("temporal checkout orchestrator not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildWorkflowID(cmd, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.PlaceOrderWorkflowName,
		checkoutworkflows.PlaceOrderInput{Command: cmd, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(cmd.IdempotencyKey) != "" {
			var receipt domain.Receipt
			if err := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId).Get(ctx, &receipt); err != nil {
				return domain.Receipt{}, mapWorkflowError(err)
			}
			return receipt, nil
		}
		return domain.Receipt{}, err
	}
	var receipt domain.Receipt
	if err := run.Get(ctx, &receipt); err != nil {
		return domain.Receipt{}, mapWorkflowError(err)
	}
	return receipt, nil
}

// mapWorkflowError restores the checkout sentinels from the activity error types, and the
// remote HTTP status when the activity recorded one.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	var sentinel error
	switch appErr.Type() {
	case checkoutactivities.OrderFailedErrorType:
		sentinel = ports.ErrOrderFailed
	case checkoutactivities.PaymentFailedErrorType:
		sentinel = ports.ErrPaymentFailed
	default:
		return err
	}
	var remote checkoutactivities.RemoteFailure
	if appErr.HasDetails() && appErr.Details(&remote) == nil && remote.StatusCode != 0 {
		return fmt.Errorf("%w: %w", sentinel, &sharederrors.HTTPError{StatusCode: remote.StatusCode, Message: remote.Message})
	}
	return fmt.Errorf("%w: %s", sentinel, trimSentinel(appErr.Message(), sentinel))
}

func trimSentinel(msg string, sentinel error) string {
	return strings.TrimPrefix(msg, sentinel.Error()+": ")
}

// InlineOrchestrator runs the checkout steps in process, one after the other.
type InlineOrchestrator struct {
	orders   ports.OrderGateway
	payments ports.PaymentConfirmer
}

// NewInlineOrchestrator wraps the gateways for synchronous execution.
func NewInlineOrchestrator(orders ports.OrderGateway, payments ports.PaymentConfirmer) *InlineOrchestrator {
	return &InlineOrchestrator{orders: orders, payments: payments}
}

func (o *InlineOrchestrator) PlaceOrder(ctx context.Context, cmd domain.Command) (domain.Receipt, error) {
	if o == nil || o.orders == nil {
		return domain.Receipt{}, errors.New("inline checkout orchestrator not configured")
	}
	placement, err := o.orders.CreateOrder(ctx, cmd)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("%w: %w", ports.ErrOrderFailed, err)
	}
	if !cmd.PaymentMethod.RequiresConfirmation() {
		return domain.NewReceipt(cmd, placement, false), nil
	}
	if placement.ClientSecret == "" {
		return domain.Receipt{}, fmt.Errorf("%w: order %s has no payment client secret", ports.ErrPaymentFailed, placement.OrderID)
	}
	if o.payments == nil {
		return domain.Receipt{}, fmt.Errorf("%w: card payments are not configured", ports.ErrPaymentFailed)
	}
	if err := o.payments.Confirm(ctx, placement.ClientSecret, cmd.IdempotencyKey); err != nil {
		if errors.Is(err, ports.ErrPaymentFailed) {
			return domain.Receipt{}, err
		}
		return domain.Receipt{}, fmt.Errorf("%w: %w", ports.ErrPaymentFailed, err)
	}
	return domain.NewReceipt(cmd, placement, true), nil
}

func buildWorkflowID(cmd domain.Command, traceComponent string) string {
	if key := strings.TrimSpace(cmd.IdempotencyKey); key != "" {
		return fmt.Sprintf("checkout-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("checkout-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
