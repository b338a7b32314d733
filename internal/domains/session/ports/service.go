package ports

import (
	"context"

	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

// Service exposes the session use cases to the CLI and the other bounded contexts.
type Service interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, reg domain.Registration) error
	RequestPasswordReset(ctx context.Context, email string) (domain.ResetAck, error)
	ConfirmPasswordReset(ctx context.Context, token, password string) error
	FetchMe(ctx context.Context) (*domain.User, error)
	UpdateMe(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Logout(ctx context.Context) error

	Snapshot() domain.Snapshot
	Token() string
	User() *domain.User
	IsAuthenticated() bool
	Loading() bool
}

// TokenSource is the narrow view other contexts need to make authenticated calls.
type TokenSource interface {
	Token() string
	User() *domain.User
}
