package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
)

// DefaultProducts is the catalog a new server starts with.
func DefaultProducts() []storefront.Product {
	return []storefront.Product{
		{ID: "p-19l", Name: "19L Water Bottle", Description: "Refillable dispenser bottle", SizeLiters: 19, Price: 4.99, Active: true, Category: "bottles"},
		{ID: "p-6l", Name: "6L Water Bottle", Description: "Family size bottle", SizeLiters: 6, Price: 2.49, Active: true, Category: "bottles"},
		{ID: "p-1_5l", Name: "1.5L Water Bottle", Description: "Single serve bottle", SizeLiters: 1.5, Price: 0.99, Active: true, Category: "bottles"},
		{ID: "p-dispenser", Name: "Water Dispenser", Description: "Hot and cold dispenser", SizeLiters: 0, Price: 89.0, Active: false, Category: "equipment"},
	}
}

func defaultAbout() storefront.About {
	return storefront.About{
		MissionStatement: "Clean water at your door.",
		VisionStatement:  "Every home hydrated.",
		SocialLinks:      []storefront.Link{{Label: "Instagram", URL: "https://instagram.com/waterdelivery"}},
	}
}

func defaultSiteSettings() storefront.SiteSettings {
	return storefront.SiteSettings{
		SiteName:     "Water Delivery",
		ContactPhone: "+92 300 0000000",
		ContactEmail: "support@waterdelivery.example",
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, storefront.Health{Status: "ok"})
}

func (s *Server) getAbout(c *gin.Context) {
	s.mu.Lock()
	about := s.about
	s.mu.Unlock()
	c.JSON(http.StatusOK, about)
}

func (s *Server) getSiteSettings(c *gin.Context) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	c.JSON(http.StatusOK, settings)
}

// listProducts serves active products, filtered by a case-insensitive q over name and description.
func (s *Server) listProducts(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storefront.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listDeals(c *gin.Context) {
	s.mu.Lock()
	deals := append([]storefront.Deal{}, s.deals...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, deals)
}

func (s *Server) product(id string) (storefront.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return storefront.Product{}, false
}
