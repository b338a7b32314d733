package domain

import (
	"strings"
	"time"

	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
)

// Product is a catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	SizeLiters  float64
	Price       cartdomain.Money
	Active      bool
	Images      []string
	Category    string
}

// Ref is the slice of the product the cart keeps.
func (p Product) Ref() cartdomain.ProductRef {
	return cartdomain.ProductRef{ID: p.ID, Name: p.Name, UnitPrice: p.Price, SizeLiters: p.SizeLiters}
}

// Matches reports whether query occurs in the name or description, ignoring case.
func (p Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q)
}

// Deal is a public promotion.
type Deal struct {
	ID          string
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ActiveAt reports whether the deal runs at t. Open-ended bounds always match.
func (d Deal) ActiveAt(t time.Time) bool {
	if d.StartDate != nil && t.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && t.After(*d.EndDate) {
		return false
	}
	return true
}
