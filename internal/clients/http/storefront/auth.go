package storefront

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds}, &out); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: reg}, &out); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks the server to issue a reset token for email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	var out ResetRequestResult
	body := map[string]string{"email": email}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/password-resets/request", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPasswordReset sets a new password using a reset token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, resetToken, password string) (*ResetConfirmResult, error) {
	var out ResetConfirmResult
	body := map[string]string{"token": resetToken, "password": password}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/password-resets/confirm", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me loads the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", token: token}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("profile response missing user")
	}
	return out.User, nil
}

// UpdateMe sends a partial profile update and returns the server's merged profile.
func (c *Client) UpdateMe(ctx context.Context, token string, patch ProfilePatch) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/auth/me", token: token, body: patch}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("profile response missing user")
	}
	return out.User, nil
}

// ChangePassword rotates the password of the token's owner.
func (c *Client) ChangePassword(ctx context.Context, token string, change PasswordChange) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/change-password", token: token, body: change}, nil)
}

func (r *AuthResponse) validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("auth response missing token")
	}
	if r.User == nil {
		return errors.New("auth response missing user")
	}
	return nil
}
