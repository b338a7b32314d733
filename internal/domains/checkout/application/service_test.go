package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cartapp "github.com/Apurer/go-water-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/adapters/workflows"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	sessiondomain "github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

type fakeSession struct {
	token string
	user  *sessiondomain.User
}

func (f fakeSession) Token() string              { return f.token }
func (f fakeSession) User() *sessiondomain.User { return f.user }

type fakeOrders struct {
	calls     int
	last      domain.Command
	placement domain.Placement
	err       error
	cart      *cartapp.Service
	cartSize  int
}

func (f *fakeOrders) CreateOrder(_ context.Context, cmd domain.Command) (domain.Placement, error) {
	f.calls++
	f.last = cmd
	if f.cart != nil {
		f.cartSize = f.cart.Count()
	}
	return f.placement, f.err
}

type fakePayments struct {
	calls int
	err   error
}

func (f *fakePayments) Confirm(context.Context, string, string) error {
	f.calls++
	return f.err
}

func filledCart() *cartapp.Service {
	cart := cartapp.NewService()
	cart.AddItem(cartdomain.ProductRef{ID: "A", Name: "Pure Spring Water", UnitPrice: cartdomain.FromFloat(2.99)}, 2)
	cart.AddItem(cartdomain.ProductRef{ID: "A", Name: "Pure Spring Water", UnitPrice: cartdomain.FromFloat(2.99)}, 3)
	return cart
}

func alice() fakeSession {
	return fakeSession{token: "tok", user: &sessiondomain.User{Name: "Alice", Address: "1 Spring Rd"}}
}

func TestCheckout_CashOnDelivery(t *testing.T) {
	cart := filledCart()
	orders := &fakeOrders{placement: domain.Placement{OrderID: "o1"}, cart: cart}
	payments := &fakePayments{}
	svc := NewService(cart, alice(), workflows.NewInlineOrchestrator(orders, payments), WithKeyGenerator(func() string { return "key-1" }))

	receipt, err := svc.Checkout(context.Background(), domain.Request{PaymentMethod: "cod", Notes: " ring twice "})
	require.NoError(t, err)
	require.Equal(t, "o1", receipt.OrderID)
	require.Equal(t, "14.95", receipt.Total.String())

	require.Equal(t, 1, orders.calls)
	require.Zero(t, payments.calls)
	require.Equal(t, 1, orders.cartSize, "cart must still be full while the order is created")
	require.Zero(t, cart.Count())

	require.Equal(t, "key-1", orders.last.IdempotencyKey)
	require.Equal(t, "1 Spring Rd", orders.last.Address)
	require.Equal(t, "ring twice", orders.last.Notes)
	require.Equal(t, []domain.Line{{ProductID: "A", Quantity: 5}}, orders.last.Lines)
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	cases := map[string]struct {
		orders   *fakeOrders
		payments *fakePayments
		method   string
		want     error
	}{
		"order rejected": {
			orders:   &fakeOrders{err: errors.New("HTTP 500")},
			payments: &fakePayments{},
			method:   "cod",
			want:     ports.ErrOrderFailed,
		},
		"payment declined": {
			orders:   &fakeOrders{placement: domain.Placement{OrderID: "o2", ClientSecret: "pi_1_secret_2"}},
			payments: &fakePayments{err: errors.New("declined")},
			method:   "card",
			want:     ports.ErrPaymentFailed,
		},
		"card without secret": {
			orders:   &fakeOrders{placement: domain.Placement{OrderID: "o3"}},
			payments: &fakePayments{},
			method:   "card",
			want:     ports.ErrPaymentFailed,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cart := filledCart()
			svc := NewService(cart, alice(), workflows.NewInlineOrchestrator(tc.orders, tc.payments))
			_, err := svc.Checkout(context.Background(), domain.Request{PaymentMethod: tc.method})
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, 5, cart.Units())
		})
	}
}

func TestCheckout_ValidatesBeforeAnyCall(t *testing.T) {
	orders := &fakeOrders{}
	orch := workflows.NewInlineOrchestrator(orders, &fakePayments{})

	_, err := NewService(cartapp.NewService(), alice(), orch).Checkout(context.Background(), domain.Request{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = NewService(filledCart(), fakeSession{token: "tok"}, orch).Checkout(context.Background(), domain.Request{})
	require.ErrorIs(t, err, domain.ErrAddressRequired)

	_, err = NewService(filledCart(), alice(), orch).Checkout(context.Background(), domain.Request{PaymentMethod: "bitcoin"})
	require.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewService(filledCart(), fakeSession{}, orch).Checkout(context.Background(), domain.Request{Address: "x"})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.Zero(t, orders.calls)
}
