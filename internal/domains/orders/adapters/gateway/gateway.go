package gateway

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/orders/ports"
)

// Gateway implements the orders port over the storefront REST client.
type Gateway struct {
	client *storefront.Client
}

func New(client *storefront.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("storefront orders gateway not configured")
	}
	orders, err := g.client.ListOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrder(o))
	}
	return out, nil
}

// ToOrder converts a wire order into the domain shape.
func ToOrder(o storefront.Order) domain.Order {
	items := make([]domain.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.Item{
			ProductID:   it.Product.ID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   cartdomain.FromFloat(it.UnitPrice),
		})
	}
	return domain.Order{
		ID:            o.ID,
		Customer:      o.Customer,
		Items:         items,
		Total:         cartdomain.FromFloat(o.TotalAmount),
		Status:        domain.Status(o.Status),
		Address:       o.Address,
		Notes:         o.Notes,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		DeliveredAt:   o.DeliveredAt,
		ETA:           o.ETA,
	}
}

var _ ports.Gateway = (*Gateway)(nil)
