package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
)

var (
	// ErrOrderFailed wraps a failed create-order call.
	ErrOrderFailed = errors.New("order failed")
	// ErrPaymentFailed wraps a card payment that could not be confirmed.
	ErrPaymentFailed = errors.New("payment failed")
)

// OrderGateway submits orders to the storefront API.
type OrderGateway interface {
	CreateOrder(ctx context.Context, cmd domain.Command) (domain.Placement, error)
}

// PaymentConfirmer confirms a card payment using the client secret issued with the order.
// A retried checkout passes the same idempotency key so the payment API confirms at most once.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, clientSecret, idempotencyKey string) error
}

// Orchestrator runs create-order and, for card orders, payment confirmation.
type Orchestrator interface {
	PlaceOrder(ctx context.Context, cmd domain.Command) (domain.Receipt, error)
}

// Service exposes checkout to the CLI.
type Service interface {
	Checkout(ctx context.Context, req domain.Request) (domain.Receipt, error)
}
