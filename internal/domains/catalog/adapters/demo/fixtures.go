package demo

import (
	cartdomain "github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/catalog/domain"
)

// Products is the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Pure Spring Water", Description: "Fresh mountain spring water with natural minerals", SizeLiters: 19, Price: cartdomain.FromFloat(2.99), Active: true, Images: []string{"https://picsum.photos/seed/water1/200/200.jpg"}, Category: "bottled"},
		{ID: "2", Name: "Mineral Water", Description: "Premium mineral water with electrolytes", SizeLiters: 1, Price: cartdomain.FromFloat(0.99), Active: true, Images: []string{"https://picsum.photos/seed/water2/200/200.jpg"}, Category: "bottled"},
		{ID: "3", Name: "Alkaline Water", Description: "pH-balanced alkaline water for better hydration", SizeLiters: 0.5, Price: cartdomain.FromFloat(1.49), Active: true, Images: []string{"https://picsum.photos/seed/water3/200/200.jpg"}, Category: "bottled"},
		{ID: "4", Name: "Water Dispenser", Description: "Hot and cold water dispenser for home/office", SizeLiters: 0, Price: cartdomain.FromFloat(149.99), Active: true, Images: []string{"https://picsum.photos/seed/dispenser/200/200.jpg"}, Category: "equipment"},
		{ID: "5", Name: "Glass Water Bottles", Description: "Set of 6 reusable glass bottles", SizeLiters: 0.75, Price: cartdomain.FromFloat(24.99), Active: true, Images: []string{"https://picsum.photos/seed/glass/200/200.jpg"}, Category: "bottles"},
		{ID: "6", Name: "Water Filter", Description: "Advanced water filtration system", SizeLiters: 0, Price: cartdomain.FromFloat(89.99), Active: true, Images: []string{"https://picsum.photos/seed/filter/200/200.jpg"}, Category: "equipment"},
	}
}
