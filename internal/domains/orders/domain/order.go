package domain

import (
	"time"

	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
)

// Status is the delivery state of an order as reported by the server.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusEnRoute   Status = "en_route"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Item is a stored order line.
type Item struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   cartdomain.Money
}

// Order is a placed order.
type Order struct {
	ID            string
	Customer      string
	Items         []Item
	Total         cartdomain.Money
	Status        Status
	Address       string
	Notes         string
	PaymentMethod string
	PaymentStatus string
	CreatedAt     *time.Time
	DeliveredAt   *time.Time
	ETA           *time.Time
}

// ShortID is the tail shown in order lists.
func (o Order) ShortID() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}
