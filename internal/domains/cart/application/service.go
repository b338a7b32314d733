package application

import (
	"sync"

	"github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/cart/ports"
)

// Service guards a single in-memory cart for concurrent callers.
type Service struct {
	mu   sync.RWMutex
	cart domain.Cart
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) AddItem(p domain.ProductRef, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(p, qty)
}

func (s *Service) UpdateQty(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, qty)
}

func (s *Service) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

func (s *Service) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Items()
}

func (s *Service) Total() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

// Count is the number of distinct lines.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Len()
}

func (s *Service) Units() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Units()
}

var _ ports.Service = (*Service)(nil)
