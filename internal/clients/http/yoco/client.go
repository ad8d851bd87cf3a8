package yoco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultBaseURL is the hosted checkout API root.
	DefaultBaseURL = "https://payments.yoco.com/api"
	// DefaultTimeout bounds a single checkout call.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// ErrTimeout is returned when the gateway did not answer within the client timeout.
var ErrTimeout = errors.New("yoco request timed out")

// Client calls the Yoco checkout API with a secret bearer token. Calls are never retried.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient instantiates the gateway client with sane defaults.
func NewClient(baseURL, secretKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, errors.New("yoco secret key is required")
	}
	c := &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// CheckoutRequest is the body of POST /checkouts. Amount is in minor units.
type CheckoutRequest struct {
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"successUrl"`
	CancelURL  string            `json:"cancelUrl"`
	FailureURL string            `json:"failureUrl"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// CheckoutResponse is the subset of the checkout object the backend relies on.
type CheckoutResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
	Status      string `json:"status,omitempty"`
}

// APIError is returned for non-2xx responses. Body holds the decoded JSON when the
// response was JSON and RawBody the text otherwise.
type APIError struct {
	StatusCode int
	Body       map[string]any
	RawBody    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != nil {
		if encoded, err := json.Marshal(e.Body); err == nil {
			return msg + " - Details: " + string(encoded)
		}
	}
	if e.RawBody != "" {
		return msg + " - Raw: " + e.RawBody
	}
	return msg
}

// CreateCheckout opens a hosted checkout session.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("yoco client not configured")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("yoco checkout amount must be positive, got %d", req.Amount)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkouts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("call yoco API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("read yoco response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var out CheckoutResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode yoco response: %w", err)
	}
	if strings.TrimSpace(out.ID) == "" || strings.TrimSpace(out.RedirectURL) == "" {
		return nil, errors.New("yoco response is missing id or redirectUrl")
	}
	return &out, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, RawBody: strings.TrimSpace(string(body))}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		apiErr.Body = decoded
	}
	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
