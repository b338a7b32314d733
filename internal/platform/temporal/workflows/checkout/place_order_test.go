package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	checkoutactivities "github.com/Apurer/go-water-storefront/internal/platform/temporal/activities/checkout"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

type fakeOrders struct {
	calls     int
	placement domain.Placement
	err       error
}

func (f *fakeOrders) CreateOrder(context.Context, domain.Command) (domain.Placement, error) {
	f.calls++
	return f.placement, f.err
}

type fakePayments struct {
	calls int
	key   string
	err   error
}

func (f *fakePayments) Confirm(_ context.Context, _, idempotencyKey string) error {
	f.calls++
	f.key = idempotencyKey
	return f.err
}

func newEnv(t *testing.T, orders *fakeOrders, payments *fakePayments) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := checkoutactivities.NewActivities(orders, payments)
	env.RegisterWorkflowWithOptions(PlaceOrderWorkflow, workflow.RegisterOptions{Name: PlaceOrderWorkflowName})
	env.RegisterActivityWithOptions(acts.CreateOrder, activity.RegisterOptions{Name: checkoutactivities.CreateOrderActivityName})
	env.RegisterActivityWithOptions(acts.ConfirmPayment, activity.RegisterOptions{Name: checkoutactivities.ConfirmPaymentActivityName})
	return env
}

func command(method domain.PaymentMethod) domain.Command {
	return domain.Command{
		IdempotencyKey: "key-1",
		Token:          "tok",
		Lines:          []domain.Line{{ProductID: "1", Quantity: 2}},
		Address:        "123 Main St",
		PaymentMethod:  method,
		Total:          598,
	}
}

func TestPlaceOrderWorkflow_CashSkipsPayment(t *testing.T) {
	orders := &fakeOrders{placement: domain.Placement{OrderID: "o1"}}
	payments := &fakePayments{}
	env := newEnv(t, orders, payments)

	env.ExecuteWorkflow(PlaceOrderWorkflowName, PlaceOrderInput{Command: command(domain.PaymentCOD)})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var receipt domain.Receipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.Equal(t, "o1", receipt.OrderID)
	require.False(t, receipt.Paid)
	require.Equal(t, 1, orders.calls)
	require.Zero(t, payments.calls)
}

func TestPlaceOrderWorkflow_CardConfirmsPayment(t *testing.T) {
	orders := &fakeOrders{placement: domain.Placement{OrderID: "o2", ClientSecret: "pi_1_secret_2", Total: 600}}
	payments := &fakePayments{}
	env := newEnv(t, orders, payments)

	env.ExecuteWorkflow(PlaceOrderWorkflowName, PlaceOrderInput{Command: command(domain.PaymentCard)})
	require.NoError(t, env.GetWorkflowError())

	var receipt domain.Receipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.True(t, receipt.Paid)
	require.Equal(t, 1, payments.calls)
	require.Equal(t, "key-1", payments.key)
}

func TestPlaceOrderWorkflow_CardWithoutSecretFails(t *testing.T) {
	orders := &fakeOrders{placement: domain.Placement{OrderID: "o3"}}
	payments := &fakePayments{}
	env := newEnv(t, orders, payments)

	env.ExecuteWorkflow(PlaceOrderWorkflowName, PlaceOrderInput{Command: command(domain.PaymentCard)})
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, checkoutactivities.PaymentFailedErrorType, appErr.Type())
	require.Zero(t, payments.calls)
}

func TestPlaceOrderWorkflow_FailureCarriesHTTPStatus(t *testing.T) {
	orders := &fakeOrders{err: &sharederrors.HTTPError{StatusCode: 409, Message: "Out of stock"}}
	env := newEnv(t, orders, &fakePayments{})

	env.ExecuteWorkflow(PlaceOrderWorkflowName, PlaceOrderInput{Command: command(domain.PaymentCOD)})
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(env.GetWorkflowError(), &appErr))
	require.True(t, appErr.HasDetails())
	var remote checkoutactivities.RemoteFailure
	require.NoError(t, appErr.Details(&remote))
	require.Equal(t, 409, remote.StatusCode)
	require.Equal(t, "Out of stock", remote.Message)
}

func TestPlaceOrderWorkflow_CreateOrderNotRetried(t *testing.T) {
	orders := &fakeOrders{err: errors.New("HTTP 500")}
	env := newEnv(t, orders, &fakePayments{})

	env.ExecuteWorkflow(PlaceOrderWorkflowName, PlaceOrderInput{Command: command(domain.PaymentCOD)})
	err := env.GetWorkflowError()
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, checkoutactivities.OrderFailedErrorType, appErr.Type())
	require.Equal(t, 1, orders.calls)
}
