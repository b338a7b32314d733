package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the hosted payment API.
const DefaultBaseURL = "https://api.stripe.com"

// Client confirms payment intents with a publishable key, as a mobile payment sheet would.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
}

// ConfirmOption configures ConfirmIntent behavior.
type ConfirmOption func(*confirmOptions)

type confirmOptions struct {
	idempotencyKey string
	paymentMethod  string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) ConfirmOption {
	return func(opts *confirmOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// WithPaymentMethod attaches a saved payment method to the confirmation.
func WithPaymentMethod(id string) ConfirmOption {
	return func(opts *confirmOptions) {
		opts.paymentMethod = strings.TrimSpace(id)
	}
}

// Intent is the part of a payment intent the storefront cares about.
type Intent struct {
	ID               string        `json:"id"`
	Status           string        `json:"status"`
	LastPaymentError *errorPayload `json:"last_payment_error,omitempty"`
}

// Confirmed reports whether the intent reached a state where the order can proceed.
func (i *Intent) Confirmed() bool {
	switch i.Status {
	case "succeeded", "processing", "requires_capture":
		return true
	default:
		return false
	}
}

// FailureMessage is the processor's explanation for an unconfirmed intent.
func (i *Intent) FailureMessage() string {
	if i.LastPaymentError != nil && strings.TrimSpace(i.LastPaymentError.Message) != "" {
		return strings.TrimSpace(i.LastPaymentError.Message)
	}
	return "payment intent " + i.Status
}

type errorPayload struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error *errorPayload `json:"error"`
}

// NewClient instantiates the payment client with sane defaults.
func NewClient(baseURL, publishableKey string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid payment base URL: %w", err)
	}
	publishableKey = strings.TrimSpace(publishableKey)
	if publishableKey == "" {
		return nil, errors.New("payment publishable key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{baseURL: baseURL, publishableKey: publishableKey, httpClient: httpClient}, nil
}

// IntentID extracts the intent id from a client secret of the form pi_123_secret_abc.
func IntentID(clientSecret string) (string, error) {
	clientSecret = strings.TrimSpace(clientSecret)
	idx := strings.Index(clientSecret, "_secret_")
	if idx <= 0 {
		return "", errors.New("malformed payment client secret")
	}
	return clientSecret[:idx], nil
}

// ConfirmIntent confirms the intent the client secret belongs to.
func (c *Client) ConfirmIntent(ctx context.Context, clientSecret string, optFns ...ConfirmOption) (*Intent, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("payment client not configured")
	}
	intentID, err := IntentID(clientSecret)
	if err != nil {
		return nil, err
	}
	var opts confirmOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("key", c.publishableKey)
	if opts.paymentMethod != "" {
		form.Set("payment_method", opts.paymentMethod)
	}
	endpoint := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", c.baseURL, url.PathEscape(intentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment API: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read payment API response: %w", err)
	}
	status := resp.StatusCode
	switch {
	case status == http.StatusOK:
		var intent Intent
		if err := json.Unmarshal(body, &intent); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		return &intent, nil
	case status >= http.StatusBadRequest:
		return nil, fmt.Errorf("payment API error: %s", errorMessage(body, resp.Status))
	default:
		return nil, fmt.Errorf("payment API unexpected status: %s", resp.Status)
	}
}

func errorMessage(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return fallback
	}
	if msg := strings.TrimSpace(env.Error.Message); msg != "" {
		return msg
	}
	if code := strings.TrimSpace(env.Error.Code); code != "" {
		return code
	}
	return fallback
}
