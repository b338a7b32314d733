package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// ListTickets returns the caller's support tickets.
func (c *Client) ListTickets(ctx context.Context, token string) ([]Ticket, error) {
	var out []Ticket
	if err := c.do(ctx, request{method: http.MethodGet, path: "/customer-support", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTicket files a new support ticket.
func (c *Client) CreateTicket(ctx context.Context, token string, ticket NewTicket) (*Ticket, error) {
	var out Ticket
	if err := c.do(ctx, request{method: http.MethodPost, path: "/customer-support", token: token, body: ticket}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTicket loads one ticket with its comments.
func (c *Client) GetTicket(ctx context.Context, token, id string) (*Ticket, error) {
	path, err := ticketPath(id)
	if err != nil {
		return nil, err
	}
	var out Ticket
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTicketComment posts a message on a ticket.
func (c *Client) AddTicketComment(ctx context.Context, token, id, message string) error {
	path, err := ticketPath(id)
	if err != nil {
		return err
	}
	body := map[string]string{"message": message}
	return c.do(ctx, request{method: http.MethodPost, path: path + "/comments", token: token, body: body}, nil)
}

func ticketPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("ticket id is required")
	}
	return "/customer-support/" + url.PathEscape(id), nil
}
