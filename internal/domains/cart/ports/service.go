package ports

import "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"

// Service is the cart as seen by the screens and by checkout. It is purely local.
type Service interface {
	AddItem(p domain.ProductRef, qty int)
	UpdateQty(productID string, qty int)
	RemoveItem(productID string)
	Clear()
	Items() []domain.LineItem
	Total() domain.Money
	Count() int
	Units() int
}
