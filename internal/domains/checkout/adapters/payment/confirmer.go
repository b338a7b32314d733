package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-water-storefront/internal/clients/http/payments"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
)

// Confirmer confirms card payments against the hosted payment API.
type Confirmer struct {
	client        *payments.Client
	paymentMethod string
}

// NewConfirmer wires the payment client. paymentMethod may be empty when the intent already carries one.
func NewConfirmer(client *payments.Client, paymentMethod string) *Confirmer {
	return &Confirmer{client: client, paymentMethod: paymentMethod}
}

func (c *Confirmer) Confirm(ctx context.Context, clientSecret, idempotencyKey string) error {
	if c == nil || c.client == nil {
		return errors.New("payment confirmer not configured")
	}
	intent, err := c.client.ConfirmIntent(ctx, clientSecret,
		payments.WithPaymentMethod(c.paymentMethod),
		payments.WithIdempotencyKey(idempotencyKey),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrPaymentFailed, err)
	}
	if !intent.Confirmed() {
		return fmt.Errorf("%w: %s", ports.ErrPaymentFailed, intent.FailureMessage())
	}
	return nil
}

var _ ports.PaymentConfirmer = (*Confirmer)(nil)
