package payments

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntentID(t *testing.T) {
	id, err := IntentID("pi_3Nabc_secret_xyz")
	require.NoError(t, err)
	require.Equal(t, "pi_3Nabc", id)

	_, err = IntentID("garbage")
	require.Error(t, err)
}

func TestConfirmIntent(t *testing.T) {
	var gotPath string
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "pk_test_1", srv.Client())
	require.NoError(t, err)
	intent, err := c.ConfirmIntent(context.Background(), "pi_1_secret_2", WithPaymentMethod("pm_card_visa"))
	require.NoError(t, err)
	require.True(t, intent.Confirmed())
	require.Equal(t, "/v1/payment_intents/pi_1/confirm", gotPath)
	require.Equal(t, "pi_1_secret_2", gotForm.Get("client_secret"))
	require.Equal(t, "pk_test_1", gotForm.Get("key"))
	require.Equal(t, "pm_card_visa", gotForm.Get("payment_method"))
}

func TestConfirmIntentDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined.","type":"card_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "pk_test_1", srv.Client())
	require.NoError(t, err)
	_, err = c.ConfirmIntent(context.Background(), "pi_1_secret_2")
	require.EqualError(t, err, "payment API error: Your card was declined.")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", " ", nil)
	require.Error(t, err)
}
