package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ordertypes "github.com/cedrichouse/houseplans-api/internal/domains/orders/application/types"
	orderdomain "github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

// FlexibleID accepts an identifier sent either as a JSON number or as a numeric string.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identifier %q", raw)
	}
	*id = FlexibleID(v)
	return nil
}

// CheckoutRequest is the payload of POST /checkout.
type CheckoutRequest struct {
	PlanID        FlexibleID `json:"plan_id" binding:"required"`
	CustomerEmail string     `json:"customer_email" binding:"omitempty,email"`
}

// CheckoutResponse is what the storefront needs to redirect the buyer.
type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
	OrderID     int64  `json:"order_id"`
}

// OrderReference is the payload of the success and cancel callbacks. A missing id resolves to no order.
type OrderReference struct {
	OrderID FlexibleID `json:"order_id"`
}

// StatusResponse acknowledges a confirmation callback.
type StatusResponse struct {
	Status string `json:"status"`
}

// Order is the read view used by the payment result pages.
type Order struct {
	ID               int64           `json:"id"`
	PlanID           int64           `json:"plan_id"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	ReceiptGenerated bool            `json:"receipt_generated"`
	ReceiptNumber    string          `json:"receipt_number,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func ToCheckoutInput(req CheckoutRequest, origin, idempotencyKey string) ordertypes.CreateCheckoutInput {
	return ordertypes.CreateCheckoutInput{
		PlanID:         int64(req.PlanID),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		OriginHint:     strings.TrimSpace(origin),
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

func FromCheckoutResult(result *ordertypes.CheckoutResult) CheckoutResponse {
	if result == nil {
		return CheckoutResponse{}
	}
	return CheckoutResponse{RedirectURL: result.RedirectURL, OrderID: result.OrderID}
}

func FromDomainOrder(o *orderdomain.Order) Order {
	if o == nil {
		return Order{}
	}
	return Order{
		ID:               o.ID,
		PlanID:           o.PlanID,
		Amount:           o.Amount,
		Status:           string(o.Status),
		CustomerEmail:    o.CustomerEmail,
		ReceiptGenerated: o.ReceiptGenerated,
		ReceiptNumber:    o.ReceiptNumber,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
