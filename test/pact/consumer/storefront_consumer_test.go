//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/cedrichouse/houseplans-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type checkoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
	OrderID     int64  `json:"order_id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StatePlanExists).
		UponReceiving("a checkout request for an existing plan").
		WithRequest("POST", "/api/orders/checkout", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Origin", matchers.S(pacttest.ExampleOrigin))
			b.JSONBody(matchers.Map{"plan_id": matchers.Like(pacttest.ExistingPlanID)})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"redirectUrl": matchers.Term(pacttest.ExampleRedirectURL, `^https?://.+`),
				"order_id":    matchers.Like(pacttest.ExistingOrderID),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StatePendingOrderExists).
		UponReceiving("a payment success callback").
		WithRequest("POST", "/api/orders/success", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"order_id": matchers.Like(fmt.Sprint(pacttest.ExistingOrderID))})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"status": matchers.S("Order marked as paid")})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a cancel callback for a missing order").
		WithRequest("POST", "/api/orders/cancel", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"order_id": matchers.Like(pacttest.MissingOrderID)})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"status": matchers.Like(http.StatusNotFound),
				"error":  matchers.Like("Order not found"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StatePendingOrderExists).
		UponReceiving("a receipt download for an unpaid order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%d/receipt", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"status": matchers.Like(http.StatusBadRequest),
				"error":  matchers.S("Receipt can only be generated for paid orders"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := &storefrontClient{baseURL: fmt.Sprintf("http://%s:%d", config.Host, config.Port), http: &http.Client{Timeout: 5 * time.Second}}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		checkout, err := client.Checkout(ctx, pacttest.ExistingPlanID)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if checkout.RedirectURL == "" || checkout.OrderID == 0 {
			return fmt.Errorf("expected redirect and order id, got %+v", checkout)
		}

		status, err := client.Confirm(ctx, "success", fmt.Sprint(pacttest.ExistingOrderID))
		if err != nil {
			return fmt.Errorf("success callback: %w", err)
		}
		if status.Status != "Order marked as paid" {
			return fmt.Errorf("unexpected status %q", status.Status)
		}

		if _, err := client.Confirm(ctx, "cancel", pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %d", pacttest.MissingOrderID)
		}

		if err := client.Receipt(ctx, pacttest.ExistingOrderID); err == nil {
			return fmt.Errorf("expected 400 for unpaid receipt")
		}
		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL string
	http    *http.Client
}

func (c *storefrontClient) Checkout(ctx context.Context, planID int64) (*checkoutResponse, error) {
	var out checkoutResponse
	if err := c.postJSON(ctx, "/api/orders/checkout", map[string]any{"plan_id": planID}, &out, func(r *http.Request) {
		r.Header.Set("Origin", pacttest.ExampleOrigin)
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *storefrontClient) Confirm(ctx context.Context, action string, orderID any) (*statusResponse, error) {
	var out statusResponse
	if err := c.postJSON(ctx, "/api/orders/"+action, map[string]any{"order_id": orderID}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *storefrontClient) Receipt(ctx context.Context, orderID int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/orders/%d/receipt", c.baseURL, orderID), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

func (c *storefrontClient) postJSON(ctx context.Context, path string, body any, out any, decorate func(*http.Request)) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return apiError{status: resp.StatusCode, message: body.Error}
}
