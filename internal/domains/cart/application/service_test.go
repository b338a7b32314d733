package application

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-water-storefront/internal/domains/cart/domain"
)

func TestServiceScenario(t *testing.T) {
	svc := NewService()
	a := domain.ProductRef{ID: "A", Name: "Pure Spring Water", UnitPrice: domain.FromFloat(2.99)}

	svc.AddItem(a, 2)
	svc.AddItem(a, 3)
	require.Equal(t, 1, svc.Count())
	require.Equal(t, 5, svc.Items()[0].Quantity)
	require.Equal(t, "14.95", svc.Total().String())

	svc.UpdateQty("A", -1)
	require.Equal(t, 1, svc.Units())

	svc.RemoveItem("A")
	require.Zero(t, svc.Count())
}

func TestServiceConcurrentAdds(t *testing.T) {
	svc := NewService()
	p := domain.ProductRef{ID: "B", UnitPrice: 99}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.AddItem(p, 2)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, svc.Count())
	require.Equal(t, 100, svc.Units())
	require.Equal(t, domain.Money(9900), svc.Total())

	svc.Clear()
	require.Equal(t, domain.Money(0), svc.Total())
}
