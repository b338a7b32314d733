package storefront

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// CreateOrderOption configures CreateOrder.
type CreateOrderOption func(*createOrderOptions)

type createOrderOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) CreateOrderOption {
	return func(opts *createOrderOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// CreateOrder submits a new order. Card orders come back with a payment client secret.
func (c *Client) CreateOrder(ctx context.Context, token string, order CreateOrderRequest, optFns ...CreateOrderOption) (*CreateOrderResponse, error) {
	if len(order.Items) == 0 {
		return nil, errors.New("order has no items")
	}
	var opts createOrderOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	r := request{method: http.MethodPost, path: "/orders", token: token, body: order}
	if opts.idempotencyKey != "" {
		r.headers = map[string]string{"Idempotency-Key": opts.idempotencyKey}
	}
	var out CreateOrderResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders returns the caller's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
