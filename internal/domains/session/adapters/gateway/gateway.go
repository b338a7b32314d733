package gateway

import (
	"context"
	"errors"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

// Gateway implements the auth port over the storefront REST client.
type Gateway struct {
	client *storefront.Client
}

func New(client *storefront.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Grant, error) {
	if err := g.ensureClient(); err != nil {
		return domain.Grant{}, err
	}
	resp, err := g.client.Login(ctx, storefront.Credentials{Email: email, Password: password})
	if err != nil {
		return domain.Grant{}, err
	}
	return domain.Grant{Token: resp.Token, User: ToUser(resp.User)}, nil
}

func (g *Gateway) Register(ctx context.Context, reg domain.Registration) (domain.Grant, error) {
	if err := g.ensureClient(); err != nil {
		return domain.Grant{}, err
	}
	resp, err := g.client.Register(ctx, toRegistration(reg))
	if err != nil {
		return domain.Grant{}, err
	}
	return domain.Grant{Token: resp.Token, User: ToUser(resp.User)}, nil
}

func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (domain.ResetAck, error) {
	if err := g.ensureClient(); err != nil {
		return domain.ResetAck{}, err
	}
	resp, err := g.client.RequestPasswordReset(ctx, email)
	if err != nil {
		return domain.ResetAck{}, err
	}
	return domain.ResetAck{Success: resp.Success, Token: resp.Token}, nil
}

func (g *Gateway) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if err := g.ensureClient(); err != nil {
		return err
	}
	_, err := g.client.ConfirmPasswordReset(ctx, token, password)
	return err
}

func (g *Gateway) Me(ctx context.Context, token string) (*domain.User, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	user, err := g.client.Me(ctx, token)
	if err != nil {
		return nil, err
	}
	return ToUser(user), nil
}

func (g *Gateway) UpdateMe(ctx context.Context, token string, patch domain.ProfilePatch) (*domain.User, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	user, err := g.client.UpdateMe(ctx, token, toPatch(patch))
	if err != nil {
		return nil, err
	}
	return ToUser(user), nil
}

func (g *Gateway) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	if err := g.ensureClient(); err != nil {
		return err
	}
	return g.client.ChangePassword(ctx, token, storefront.PasswordChange{CurrentPassword: currentPassword, NewPassword: newPassword})
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("storefront auth gateway not configured")
	}
	return nil
}

var _ ports.AuthGateway = (*Gateway)(nil)
