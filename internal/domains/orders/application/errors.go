package application

import (
	"errors"
	"fmt"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotFound covers unknown orders and unknown plans.
	ErrNotFound = errors.New("not found")
	// ErrGateway signals the payment gateway could not open a checkout session.
	ErrGateway = errors.New("payment gateway error")
	// ErrInvalidState signals the order is not in a state that allows the operation.
	ErrInvalidState = errors.New("invalid order state")
	// ErrInvalidTransition signals a rejected status change.
	ErrInvalidTransition = errors.New("invalid order transition")
	// ErrReceiptGeneration signals the receipt document could not be assembled.
	ErrReceiptGeneration = errors.New("receipt generation failed")
	// ErrCallbackURL signals no usable base URL for gateway redirects.
	ErrCallbackURL = errors.New("no callback base url available")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var gatewayErr *ports.GatewayError
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrPlanNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.As(err, &gatewayErr), errors.Is(err, ports.ErrGatewayTimeout):
		return fmt.Errorf("%w: %w", ErrGateway, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrInvalidPlanID),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptySessionID):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
