package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

var (
	ErrInvalidPlanID          = errors.New("plan id must be greater than zero")
	ErrNegativeAmount         = errors.New("order amount must not be negative")
	ErrInvalidStatus          = errors.New("order status is invalid")
	ErrInvalidTransition      = errors.New("order status transition is not allowed")
	ErrSessionAlreadyAttached = errors.New("checkout session already attached to order")
	ErrEmptySessionID         = errors.New("checkout session id is required")
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// Order models a purchase attempt against one catalog plan.
type Order struct {
	ID                int64
	PlanID            int64
	Amount            decimal.Decimal
	Status            Status
	CheckoutSessionID string
	PaymentID         string
	CustomerEmail     string
	ReceiptGenerated  bool
	ReceiptNumber     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewPendingOrder snapshots the plan price into a new PENDING order.
func NewPendingOrder(plan Plan, customerEmail string) (*Order, error) {
	order := &Order{
		PlanID:        plan.ID,
		Amount:        plan.Price,
		Status:        StatusPending,
		CustomerEmail: strings.TrimSpace(customerEmail),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.PlanID <= 0 {
		return ErrInvalidPlanID
	}
	if o.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// AmountMinorUnits converts the snapshotted amount to integral cents, rounding half away from zero.
func (o *Order) AmountMinorUnits() int64 {
	return o.Amount.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// AttachCheckoutSession records the gateway session id. It can only be set once.
func (o *Order) AttachCheckoutSession(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if o.CheckoutSessionID != "" && o.CheckoutSessionID != sessionID {
		return ErrSessionAlreadyAttached
	}
	o.CheckoutSessionID = sessionID
	return nil
}

// TransitionTo moves the order to the target status. Repeating the current status is a no-op.
// When enforce is false any known status may overwrite any other.
func (o *Order) TransitionTo(target Status, enforce bool) (changed bool, err error) {
	if !target.Valid() {
		return false, ErrInvalidStatus
	}
	if o.Status == target {
		return false, nil
	}
	if enforce && !o.Status.CanTransitionTo(target) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}
	o.Status = target
	return true, nil
}

// ReceiptAllowed reports whether a receipt may be issued for the order.
func (o *Order) ReceiptAllowed() bool {
	return o.Status == StatusPaid
}

// IssueReceipt assigns the receipt number on first issue and flags the receipt as generated.
// An already assigned number is never replaced.
func (o *Order) IssueReceipt(number string) string {
	if o.ReceiptNumber == "" {
		o.ReceiptNumber = number
	}
	o.ReceiptGenerated = true
	return o.ReceiptNumber
}

// Valid reports whether the status is one of the known lifecycle values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status can no longer change under enforced transitions.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusFailed
}

// CanTransitionTo allows PENDING -> PAID|CANCELLED|FAILED only.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target.Terminal()
}

// ReceiptNumberFor derives the receipt number from the issue day and order id.
func ReceiptNumberFor(orderID int64, issuedAt time.Time) string {
	return fmt.Sprintf("RCP-%s-%05d", issuedAt.Format("20060102"), orderID)
}
