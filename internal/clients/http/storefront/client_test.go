package storefront_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/fakeapi"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

func newClient(t *testing.T, opts ...fakeapi.Option) (*storefront.Client, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New(opts...)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	client, err := storefront.New(srv.URL, storefront.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client, fake
}

func signIn(t *testing.T, client *storefront.Client, fake *fakeapi.Server) string {
	t.Helper()
	_, err := fake.AddUser("Ayesha Khan", "ayesha@example.com", "secret1")
	require.NoError(t, err)
	resp, err := client.Login(context.Background(), storefront.Credentials{Email: "ayesha@example.com", Password: "secret1"})
	require.NoError(t, err)
	return resp.Token
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := storefront.New("")
	require.Error(t, err)
	_, err = storefront.New("ftp://example.com")
	require.Error(t, err)

	client, err := storefront.New("http://localhost:5000/", storefront.WithPrefix("v2/"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/v2", client.BaseURL())
}

func TestLogin(t *testing.T) {
	client, fake := newClient(t)
	_, err := fake.AddUser("Ayesha Khan", "ayesha@example.com", "secret1")
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), storefront.Credentials{Email: "ayesha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ayesha Khan", resp.User.Name)

	_, err = client.Login(context.Background(), storefront.Credentials{Email: "ayesha@example.com", Password: "wrong"})
	var apiErr *storefront.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestRegisterSurfacesServerMessage(t *testing.T) {
	client, fake := newClient(t)
	_, err := fake.AddUser("Existing", "taken@example.com", "secret1")
	require.NoError(t, err)

	_, err = client.Register(context.Background(), storefront.Registration{Name: "New", Email: "taken@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, sharederrors.StatusCode(err))
	assert.Equal(t, "Email already registered", sharederrors.ServerMessage(err))

	resp, err := client.Register(context.Background(), storefront.Registration{Name: "Bilal", Email: "bilal@example.com", Password: "secret1", Phone: "0300"})
	require.NoError(t, err)
	assert.Equal(t, "0300", resp.User.Phone)
	assert.NotEmpty(t, resp.User.ID)
}

func TestProfileRoundTrip(t *testing.T) {
	client, fake := newClient(t)
	token := signIn(t, client, fake)
	ctx := context.Background()

	address := "12 Canal Road"
	updated, err := client.UpdateMe(ctx, token, storefront.ProfilePatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, address, updated.Address)
	assert.Equal(t, "Ayesha Khan", updated.Name)

	me, err := client.Me(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, address, me.Address)

	_, err = client.Me(ctx, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, sharederrors.StatusCode(err))
}

func TestChangePasswordAndReset(t *testing.T) {
	client, fake := newClient(t, fakeapi.WithResetTokens(true))
	token := signIn(t, client, fake)
	ctx := context.Background()

	err := client.ChangePassword(ctx, token, storefront.PasswordChange{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.Equal(t, "Current password is incorrect", sharederrors.ServerMessage(err))
	require.NoError(t, client.ChangePassword(ctx, token, storefront.PasswordChange{CurrentPassword: "secret1", NewPassword: "secret2"}))

	ack, err := client.RequestPasswordReset(ctx, "ayesha@example.com")
	require.NoError(t, err)
	require.True(t, ack.Success)
	require.NotEmpty(t, ack.Token)

	done, err := client.ConfirmPasswordReset(ctx, ack.Token, "secret3")
	require.NoError(t, err)
	assert.True(t, done.Success)

	_, err = client.ConfirmPasswordReset(ctx, ack.Token, "secret4")
	assert.Equal(t, "Invalid or expired token", sharederrors.ServerMessage(err))

	_, err = client.Login(ctx, storefront.Credentials{Email: "ayesha@example.com", Password: "secret3"})
	require.NoError(t, err)
}

func TestListProductsFiltersByQuery(t *testing.T) {
	client, _ := newClient(t)

	all, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	family, err := client.ListProducts(context.Background(), "family size")
	require.NoError(t, err)
	require.Len(t, family, 1)
	assert.Equal(t, "p-6l", family[0].ID)
}

func TestListProductsSendsStyledQueryAndUserAgent(t *testing.T) {
	var gotQuery, gotQ, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotQ = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := storefront.New(srv.URL, storefront.WithHTTPClient(srv.Client()), storefront.WithUserAgent("storefront-cli/2"))
	require.NoError(t, err)
	_, err = client.ListProducts(context.Background(), "  family size & more ")
	require.NoError(t, err)
	assert.Equal(t, "q=family+size+%26+more", gotQuery)
	assert.Equal(t, "family size & more", gotQ)
	assert.Equal(t, "storefront-cli/2", gotAgent)

	_, err = client.ListProducts(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestCreateOrderReplaysIdempotencyKey(t *testing.T) {
	client, fake := newClient(t)
	token := signIn(t, client, fake)
	ctx := context.Background()
	order := storefront.CreateOrderRequest{
		Items:         []storefront.OrderLine{{Product: "p-19l", Quantity: 2}, {Product: "p-1_5l", Quantity: 1}},
		Address:       "12 Canal Road",
		PaymentMethod: "card",
	}

	first, err := client.CreateOrder(ctx, token, order, storefront.WithIdempotencyKey("key-1"))
	require.NoError(t, err)
	placed := first.Placed()
	assert.InDelta(t, 10.97, placed.TotalAmount, 0.001)
	assert.NotEmpty(t, first.ClientSecret)

	again, err := client.CreateOrder(ctx, token, order, storefront.WithIdempotencyKey("key-1"))
	require.NoError(t, err)
	assert.Equal(t, placed.ID, again.Placed().ID)

	history, err := client.ListOrders(ctx, token)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "p-19l", history[0].Items[0].Product.ID)
	assert.Len(t, fake.Orders("ayesha@example.com"), 1)
}

func TestCreateOrderRequiresItems(t *testing.T) {
	client, _ := newClient(t)
	_, err := client.CreateOrder(context.Background(), "token", storefront.CreateOrderRequest{})
	require.Error(t, err)
}

func TestSupportTickets(t *testing.T) {
	client, fake := newClient(t)
	token := signIn(t, client, fake)
	ctx := context.Background()

	ticket, err := client.CreateTicket(ctx, token, storefront.NewTicket{Title: "Late delivery", Description: "Order is late"})
	require.NoError(t, err)
	assert.Equal(t, "open", ticket.Status)

	require.NoError(t, client.AddTicketComment(ctx, token, ticket.ID, "Any update?"))
	loaded, err := client.GetTicket(ctx, token, ticket.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "Ayesha Khan", loaded.Comments[0].Author.Name)

	list, err := client.ListTickets(ctx, token)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = client.GetTicket(ctx, token, "missing")
	assert.Equal(t, http.StatusNotFound, sharederrors.StatusCode(err))
	_, err = client.GetTicket(ctx, token, " ")
	require.Error(t, err)
}

func TestInfoEndpoints(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	about, err := client.About(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, about.MissionStatement)

	settings, err := client.SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Water Delivery", settings.SiteName)
}

func TestProblemBodyIsDecoded(t *testing.T) {
	client, fake := newClient(t)
	fake.FailRoute(http.MethodGet, "/deals/public", sharederrors.ErrInternal.WithDetail("deals offline"))

	_, err := client.ListDeals(context.Background())
	var apiErr *storefront.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "deals offline", apiErr.Message)
}

func TestEmptyErrorBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	client, err := storefront.New(srv.URL)
	require.NoError(t, err)

	_, err = client.Health(context.Background())
	require.EqualError(t, err, "HTTP 502")
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client, err := storefront.New(url)
	require.NoError(t, err)

	_, err = client.Health(context.Background())
	require.True(t, errors.Is(err, storefront.ErrTransport))
	assert.Zero(t, sharederrors.StatusCode(err))
}
