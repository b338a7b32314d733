package storefront

import (
	"context"
	"net/http"
)

// Health reports the API health status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, request{method: http.MethodGet, path: "/health"}, &out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		out.Status = "ok"
	}
	return &out, nil
}

// About loads the about page content.
func (c *Client) About(ctx context.Context) (*About, error) {
	var out About
	if err := c.do(ctx, request{method: http.MethodGet, path: "/about"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SiteSettings loads the public contact settings.
func (c *Client) SiteSettings(ctx context.Context) (*SiteSettings, error) {
	var out SiteSettings
	if err := c.do(ctx, request{method: http.MethodGet, path: "/site-settings"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
