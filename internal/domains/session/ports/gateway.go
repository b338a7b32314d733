package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

// AuthGateway performs the remote auth and profile calls.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (domain.Grant, error)
	Register(ctx context.Context, reg domain.Registration) (domain.Grant, error)
	RequestPasswordReset(ctx context.Context, email string) (domain.ResetAck, error)
	ConfirmPasswordReset(ctx context.Context, token, password string) error
	Me(ctx context.Context, token string) (*domain.User, error)
	UpdateMe(ctx context.Context, token string, patch domain.ProfilePatch) (*domain.User, error)
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
}
