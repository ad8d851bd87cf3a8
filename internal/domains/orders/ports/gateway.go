package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrGatewayTimeout is returned when the payment gateway did not answer in time.
var ErrGatewayTimeout = errors.New("payment gateway timed out")

// CheckoutSessionRequest is the gateway-neutral hosted checkout request.
type CheckoutSessionRequest struct {
	AmountMinorUnits int64
	Currency         string
	SuccessURL       string
	CancelURL        string
	FailureURL       string
	Metadata         map[string]string
}

// CheckoutSession is the hosted checkout opened by the gateway.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// PaymentGateway opens hosted checkout sessions. Implementations must not retry.
type PaymentGateway interface {
	OpenCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

// GatewayError describes a failed gateway call. StatusCode is zero for transport failures.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("payment gateway responded %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("payment gateway responded %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("payment gateway request failed: %v", e.Err)
	default:
		return "payment gateway request failed"
	}
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
