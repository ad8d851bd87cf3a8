package yoco

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout_Success(t *testing.T) {
	var captured CheckoutRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/checkouts", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_1","redirectUrl":"https://c.yoco.com/checkout/ch_1","status":"created"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/api/", "sk_test_abc")
	require.NoError(t, err)

	resp, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		Amount:     15000000,
		Currency:   "ZAR",
		SuccessURL: "https://shop.example.com/payment-success?order_id=1",
		CancelURL:  "https://shop.example.com/payment-cancel?order_id=1",
		FailureURL: "https://shop.example.com/payment-cancel?order_id=1",
		Metadata:   map[string]string{"order_id": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_1", resp.ID)
	assert.Equal(t, "https://c.yoco.com/checkout/ch_1", resp.RedirectURL)
	assert.Equal(t, int64(15000000), captured.Amount)
	assert.Equal(t, "ZAR", captured.Currency)
	assert.Equal(t, "1", captured.Metadata["order_id"])
}

func TestCreateCheckout_JSONErrorBody(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"amount too small"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc")
	require.NoError(t, err)

	_, err = client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 1, Currency: "ZAR"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "amount too small", apiErr.Body["message"])
	assert.Contains(t, err.Error(), `Details: {"message":"amount too small"}`)
	assert.Equal(t, 1, calls)
}

func TestCreateCheckout_RawErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc")
	require.NoError(t, err)

	_, err = client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 100, Currency: "ZAR"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Nil(t, apiErr.Body)
	assert.Equal(t, "upstream unavailable", apiErr.RawBody)
	assert.Contains(t, err.Error(), "Raw: upstream unavailable")
}

func TestCreateCheckout_MalformedSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"created"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc")
	require.NoError(t, err)

	_, err = client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 100, Currency: "ZAR"})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCreateCheckout_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc", WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.CreateCheckout(context.Background(), CheckoutRequest{Amount: 100, Currency: "ZAR"})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestNewClient_RequiresSecret(t *testing.T) {
	_, err := NewClient("", " ")
	require.Error(t, err)

	client, err := NewClient("", "sk_live_x")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestDetectMode(t *testing.T) {
	assert.Equal(t, ModeTest, DetectMode("sk_test_1", "pk_test_1"))
	assert.Equal(t, ModeLive, DetectMode("sk_live_1", "pk_live_1"))
	assert.Equal(t, ModeMixed, DetectMode("sk_live_1", "pk_test_1"))
	assert.Equal(t, ModeTest, DetectMode("sk_test_1", ""))
	assert.Equal(t, ModeUnknown, DetectMode("abc", "pk_test_1"))
	assert.Equal(t, "sk_test_1234...", MaskKey("sk_test_123456789"))
	assert.Equal(t, "(not set)", MaskKey(""))
}
