package gateway

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
)

// Gateway submits orders through the storefront REST client.
type Gateway struct {
	client *storefront.Client
}

func New(client *storefront.Client) *Gateway {
	return &Gateway{client: client}
}

// CreateOrder posts the order with the command's idempotency key.
func (g *Gateway) CreateOrder(ctx context.Context, cmd domain.Command) (domain.Placement, error) {
	if g == nil || g.client == nil {
		return domain.Placement{}, errors.New("storefront checkout gateway not configured")
	}
	resp, err := g.client.CreateOrder(ctx, cmd.Token, ToRequest(cmd), storefront.WithIdempotencyKey(cmd.IdempotencyKey))
	if err != nil {
		return domain.Placement{}, err
	}
	order := resp.Placed()
	return domain.Placement{
		OrderID:      order.ID,
		ClientSecret: resp.ClientSecret,
		Total:        cartdomain.FromFloat(order.TotalAmount),
	}, nil
}

// ToRequest builds the create-order payload.
func ToRequest(cmd domain.Command) storefront.CreateOrderRequest {
	items := make([]storefront.OrderLine, 0, len(cmd.Lines))
	for _, l := range cmd.Lines {
		items = append(items, storefront.OrderLine{Product: l.ProductID, Quantity: l.Quantity})
	}
	return storefront.CreateOrderRequest{
		Items:         items,
		Address:       cmd.Address,
		Notes:         cmd.Notes,
		PaymentMethod: string(cmd.PaymentMethod),
	}
}

var _ ports.OrderGateway = (*Gateway)(nil)
