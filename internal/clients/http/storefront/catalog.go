package storefront

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// ListProducts returns the catalog, optionally filtered by a free-text query.
func (c *Client) ListProducts(ctx context.Context, query string) ([]Product, error) {
	r := request{method: http.MethodGet, path: "/products"}
	if q := strings.TrimSpace(query); q != "" {
		frag, err := runtime.StyleParamWithLocation("form", true, "q", runtime.ParamLocationQuery, q)
		if err != nil {
			return nil, fmt.Errorf("encode product query: %w", err)
		}
		r.query = frag
	}
	var out []Product
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDeals returns the public promotions.
func (c *Client) ListDeals(ctx context.Context) ([]Deal, error) {
	var out []Deal
	if err := c.do(ctx, request{method: http.MethodGet, path: "/deals/public"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
