package domain

import (
	"errors"
	"strings"

	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrAddressRequired      = errors.New("delivery address is required")
	ErrInvalidPaymentMethod = errors.New("payment method must be cod or card")
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod accepts cod or card in any case; blank means cod.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PaymentCOD:
		return PaymentCOD, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// RequiresConfirmation reports whether the order must be paid before checkout completes.
func (m PaymentMethod) RequiresConfirmation() bool {
	return m == PaymentCard
}

// Request is the checkout form.
type Request struct {
	Address       string
	Notes         string
	PaymentMethod string
}

// Line is one ordered product.
type Line struct {
	ProductID string
	Quantity  int
}

// Command is everything needed to place an order. It crosses the workflow boundary, so it stays plain data.
type Command struct {
	IdempotencyKey string
	Token          string
	Lines          []Line
	Address        string
	Notes          string
	PaymentMethod  PaymentMethod
	Total          cartdomain.Money
}

// Placement is the server's answer to create-order.
type Placement struct {
	OrderID      string
	ClientSecret string
	Total        cartdomain.Money
}

// Receipt is the outcome of a completed checkout.
type Receipt struct {
	OrderID       string
	Total         cartdomain.Money
	PaymentMethod PaymentMethod
	Paid          bool
}

// NewReceipt builds the receipt for a placed order. Server totals win over the cart's when present.
func NewReceipt(cmd Command, placement Placement, paid bool) Receipt {
	total := placement.Total
	if total == 0 {
		total = cmd.Total
	}
	return Receipt{
		OrderID:       placement.OrderID,
		Total:         total,
		PaymentMethod: cmd.PaymentMethod,
		Paid:          paid,
	}
}

// LinesFrom converts cart lines into order lines.
func LinesFrom(items []cartdomain.LineItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}
