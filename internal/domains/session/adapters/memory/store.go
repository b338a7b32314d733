package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

// Store is an in-memory session store for tests and one-shot runs.
type Store struct {
	values sync.Map
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.values.Store(key, value)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.values.Delete(key)
	return nil
}

var _ ports.Store = (*Store)(nil)
