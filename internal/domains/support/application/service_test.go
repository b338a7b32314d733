package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-water-storefront/internal/domains/support/adapters/demo"
	"github.com/Apurer/go-water-storefront/internal/domains/support/domain"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestOpenValidatesAndPrepends(t *testing.T) {
	svc := NewService(demo.NewGateway(), staticToken("tok"))
	ctx := context.Background()

	_, err := svc.Open(ctx, "   ", "water is cloudy")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Open(ctx, "Cloudy water", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.Open(ctx, "  Cloudy water ", " Bottle looked cloudy ")
	require.NoError(t, err)
	require.Equal(t, "Cloudy water", created.Title)
	require.Equal(t, domain.StatusOpen, created.Status)

	tickets, err := svc.Tickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	require.Equal(t, created.ID, tickets[0].ID)
}

func TestCommentReloadsTicket(t *testing.T) {
	svc := NewService(demo.NewGateway(), staticToken("tok"))
	ctx := context.Background()

	_, err := svc.Comment(ctx, "ticket1", "  ")
	require.ErrorIs(t, err, ErrInvalidInput)

	ticket, err := svc.Comment(ctx, "ticket1", "Any update?")
	require.NoError(t, err)
	require.Len(t, ticket.Comments, 1)
	require.Equal(t, "Any update?", ticket.Comments[0].Message)

	_, err = svc.Ticket(ctx, "nope")
	require.Equal(t, 404, sharederrors.StatusCode(err))
}

func TestSupportRequiresToken(t *testing.T) {
	svc := NewService(demo.NewGateway(), staticToken(""))
	_, err := svc.Tickets(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.Open(context.Background(), "a", "b")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCommentAuthorFallback(t *testing.T) {
	require.Equal(t, "User", domain.Comment{}.Author())
	require.Equal(t, "Ana", domain.Comment{AuthorName: "Ana"}.Author())
}
