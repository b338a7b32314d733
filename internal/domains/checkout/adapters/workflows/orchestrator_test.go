package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	checkoutactivities "github.com/Apurer/go-water-storefront/internal/platform/temporal/activities/checkout"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

type recordingOrders struct {
	calls     int
	placement domain.Placement
	err       error
}

func (r *recordingOrders) CreateOrder(context.Context, domain.Command) (domain.Placement, error) {
	r.calls++
	return r.placement, r.err
}

type recordingPayments struct {
	calls  int
	secret string
	key    string
	err    error
}

func (r *recordingPayments) Confirm(_ context.Context, secret, idempotencyKey string) error {
	r.calls++
	r.secret = secret
	r.key = idempotencyKey
	return r.err
}

func TestInlineOrchestrator_Cash(t *testing.T) {
	orders := &recordingOrders{placement: domain.Placement{OrderID: "o1"}}
	payments := &recordingPayments{}
	o := NewInlineOrchestrator(orders, payments)

	receipt, err := o.PlaceOrder(context.Background(), domain.Command{PaymentMethod: domain.PaymentCOD, Total: 1495})
	require.NoError(t, err)
	require.Equal(t, "o1", receipt.OrderID)
	require.Equal(t, "14.95", receipt.Total.String())
	require.Equal(t, 1, orders.calls)
	require.Zero(t, payments.calls)
}

func TestInlineOrchestrator_Card(t *testing.T) {
	orders := &recordingOrders{placement: domain.Placement{OrderID: "o2", ClientSecret: "pi_9_secret_x"}}
	payments := &recordingPayments{}
	o := NewInlineOrchestrator(orders, payments)

	receipt, err := o.PlaceOrder(context.Background(), domain.Command{PaymentMethod: domain.PaymentCard, IdempotencyKey: "idem-7"})
	require.NoError(t, err)
	require.True(t, receipt.Paid)
	require.Equal(t, "pi_9_secret_x", payments.secret)
	require.Equal(t, "idem-7", payments.key)

	orders.placement.ClientSecret = ""
	_, err = o.PlaceOrder(context.Background(), domain.Command{PaymentMethod: domain.PaymentCard})
	require.ErrorIs(t, err, ports.ErrPaymentFailed)

	orders.placement.ClientSecret = "pi_9_secret_x"
	payments.err = errors.New("declined")
	_, err = o.PlaceOrder(context.Background(), domain.Command{PaymentMethod: domain.PaymentCard})
	require.ErrorIs(t, err, ports.ErrPaymentFailed)
	require.EqualError(t, err, "payment failed: declined")
}

func TestInlineOrchestrator_OrderFailureKeepsHTTPStatus(t *testing.T) {
	orders := &recordingOrders{err: &sharederrors.HTTPError{StatusCode: 422, Message: "Product unavailable"}}
	o := NewInlineOrchestrator(orders, &recordingPayments{})

	_, err := o.PlaceOrder(context.Background(), domain.Command{PaymentMethod: domain.PaymentCOD})
	require.ErrorIs(t, err, ports.ErrOrderFailed)
	require.Equal(t, 422, sharederrors.StatusCode(err))
	require.EqualError(t, err, "order failed: Product unavailable")
}

func TestMapWorkflowError(t *testing.T) {
	err := mapWorkflowError(temporal.NewNonRetryableApplicationError("payment failed: declined", checkoutactivities.PaymentFailedErrorType, nil))
	require.ErrorIs(t, err, ports.ErrPaymentFailed)
	require.EqualError(t, err, "payment failed: declined")

	err = mapWorkflowError(temporal.NewNonRetryableApplicationError("HTTP 500", checkoutactivities.OrderFailedErrorType, nil))
	require.ErrorIs(t, err, ports.ErrOrderFailed)

	plain := errors.New("boom")
	require.Equal(t, plain, mapWorkflowError(plain))
}

func TestMapWorkflowErrorKeepsHTTPStatus(t *testing.T) {
	cause := &sharederrors.HTTPError{StatusCode: 409, Message: "Out of stock"}
	details := checkoutactivities.RemoteFailure{StatusCode: 409, Message: "Out of stock"}
	err := mapWorkflowError(temporal.NewNonRetryableApplicationError(cause.Error(), checkoutactivities.OrderFailedErrorType, cause, details))
	require.ErrorIs(t, err, ports.ErrOrderFailed)
	require.Equal(t, 409, sharederrors.StatusCode(err))
	require.Equal(t, "Out of stock", sharederrors.ServerMessage(err))
	require.EqualError(t, err, "order failed: Out of stock")

	// failures that never reached the API carry no status
	err = mapWorkflowError(temporal.NewNonRetryableApplicationError("dial tcp: refused", checkoutactivities.OrderFailedErrorType, nil, checkoutactivities.RemoteFailure{}))
	require.ErrorIs(t, err, ports.ErrOrderFailed)
	require.Zero(t, sharederrors.StatusCode(err))
}

func TestBuildWorkflowIDIsStableForKey(t *testing.T) {
	a := buildWorkflowID(domain.Command{IdempotencyKey: "k"}, "trace-1")
	b := buildWorkflowID(domain.Command{IdempotencyKey: " k "}, "trace-2")
	require.Equal(t, a, b)
	require.Contains(t, a, "checkout-idem-")
}
