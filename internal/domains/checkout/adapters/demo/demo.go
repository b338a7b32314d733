package demo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
)

// OrderRecorder receives orders placed in demo mode so the history shows them.
type OrderRecorder interface {
	Record(ctx context.Context, o ordersdomain.Order) error
}

// Gateway accepts every order locally.
type Gateway struct {
	recorder OrderRecorder
	now      func() time.Time
}

func NewGateway(recorder OrderRecorder) *Gateway {
	return &Gateway{recorder: recorder, now: time.Now}
}

func (g *Gateway) CreateOrder(ctx context.Context, cmd domain.Command) (domain.Placement, error) {
	placement := domain.Placement{OrderID: "demo-" + uuid.NewString()[:8], Total: cmd.Total}
	if cmd.PaymentMethod.RequiresConfirmation() {
		placement.ClientSecret = "pi_demo_secret_" + uuid.NewString()[:8]
	}
	if g.recorder != nil {
		created := g.now().UTC()
		items := make([]ordersdomain.Item, 0, len(cmd.Lines))
		for _, l := range cmd.Lines {
			items = append(items, ordersdomain.Item{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		err := g.recorder.Record(ctx, ordersdomain.Order{
			ID:            placement.OrderID,
			Items:         items,
			Total:         cmd.Total,
			Status:        ordersdomain.StatusPlaced,
			Address:       cmd.Address,
			Notes:         cmd.Notes,
			PaymentMethod: string(cmd.PaymentMethod),
			PaymentStatus: "pending",
			CreatedAt:     &created,
		})
		if err != nil {
			return domain.Placement{}, err
		}
	}
	return placement, nil
}

// Confirmer approves every payment.
type Confirmer struct{}

func (Confirmer) Confirm(context.Context, string, string) error { return nil }

var (
	_ ports.OrderGateway     = (*Gateway)(nil)
	_ ports.PaymentConfirmer = Confirmer{}
)
