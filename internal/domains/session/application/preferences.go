package application

import (
	"context"
	"strconv"

	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

// Preferences reads and writes device settings that live next to the session.
type Preferences struct {
	store ports.Store
}

func NewPreferences(store ports.Store) *Preferences {
	return &Preferences{store: store}
}

// DemoMode reports the persisted demo flag; unset means off.
func (p *Preferences) DemoMode(ctx context.Context) (bool, error) {
	raw, ok, err := p.store.Get(ctx, ports.KeyDemoMode)
	if err != nil || !ok {
		return false, err
	}
	on, err := strconv.ParseBool(raw)
	if err != nil {
		return false, nil
	}
	return on, nil
}

func (p *Preferences) SetDemoMode(ctx context.Context, on bool) error {
	if !on {
		return p.store.Delete(ctx, ports.KeyDemoMode)
	}
	return p.store.Set(ctx, ports.KeyDemoMode, strconv.FormatBool(on))
}
