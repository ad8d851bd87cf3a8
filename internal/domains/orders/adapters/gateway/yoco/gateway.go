package yoco

import (
	"context"
	"encoding/json"
	"errors"

	yococlient "github.com/cedrichouse/houseplans-api/internal/clients/http/yoco"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.PaymentGateway = (*Gateway)(nil)

type checkoutCreator interface {
	CreateCheckout(ctx context.Context, req yococlient.CheckoutRequest) (*yococlient.CheckoutResponse, error)
}

// Gateway adapts the Yoco client to the payment gateway port.
type Gateway struct {
	client checkoutCreator
}

// NewGateway wraps client. A nil client yields a gateway that fails every call as not configured.
func NewGateway(client *yococlient.Client) *Gateway {
	if client == nil {
		return &Gateway{}
	}
	return &Gateway{client: client}
}

func (g *Gateway) OpenCheckoutSession(ctx context.Context, req ports.CheckoutSessionRequest) (*ports.CheckoutSession, error) {
	if g == nil || g.client == nil {
		return nil, &ports.GatewayError{Err: errors.New("payment gateway not configured")}
	}
	resp, err := g.client.CreateCheckout(ctx, yococlient.CheckoutRequest{
		Amount:     req.AmountMinorUnits,
		Currency:   req.Currency,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		FailureURL: req.FailureURL,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return nil, toPortError(err)
	}
	return &ports.CheckoutSession{ID: resp.ID, RedirectURL: resp.RedirectURL}, nil
}

func toPortError(err error) error {
	if errors.Is(err, yococlient.ErrTimeout) {
		return &ports.GatewayError{Err: errors.Join(ports.ErrGatewayTimeout, err)}
	}
	var apiErr *yococlient.APIError
	if errors.As(err, &apiErr) {
		body := apiErr.RawBody
		if apiErr.Body != nil {
			if encoded, encErr := json.Marshal(apiErr.Body); encErr == nil {
				body = string(encoded)
			}
		}
		return &ports.GatewayError{StatusCode: apiErr.StatusCode, Body: body, Err: err}
	}
	return &ports.GatewayError{Err: err}
}
