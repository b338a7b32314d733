package domain

import "strings"

// ProductRef is what a screen hands the cart when a product is added.
type ProductRef struct {
	ID         string
	Name       string
	UnitPrice  Money
	SizeLiters float64
}

// LineItem is one product in the cart. ProductID is unique within a cart.
type LineItem struct {
	ProductID  string
	Name       string
	UnitPrice  Money
	SizeLiters float64
	Quantity   int
}

// Subtotal is the line's price times quantity.
func (l LineItem) Subtotal() Money {
	return l.UnitPrice.Times(l.Quantity)
}

// Cart is an ordered list of line items. The zero value is an empty cart.
type Cart struct {
	items []LineItem
}

// Add merges qty units of p into the cart. Quantities below 1 add a single unit.
func (c *Cart) Add(p ProductRef, qty int) {
	if qty < 1 {
		qty = 1
	}
	id := strings.TrimSpace(p.ID)
	for i := range c.items {
		if c.items[i].ProductID == id {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, LineItem{
		ProductID:  id,
		Name:       p.Name,
		UnitPrice:  p.UnitPrice,
		SizeLiters: p.SizeLiters,
		Quantity:   qty,
	})
}

// SetQuantity sets an existing line's quantity, clamped to 1. Unknown ids are ignored.
// Ids are compared after trimming, as in Add.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	productID = strings.TrimSpace(productID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			return true
		}
	}
	return false
}

// Remove deletes the line for productID, if any.
func (c *Cart) Remove(productID string) bool {
	productID = strings.TrimSpace(productID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of unit price times quantity over every line.
func (c *Cart) Total() Money {
	var total Money
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Units is the number of units across all lines.
func (c *Cart) Units() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }
