package domain

import "time"

// Event is the base interface for order lifecycle events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() int64
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	OrderID   int64     `json:"order_id"`
	Timestamp time.Time `json:"occurred_at"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the order the event belongs to.
func (e BaseEvent) AggregateID() int64 {
	return e.OrderID
}

// OrderCreated is raised when a pending order is persisted for a plan.
type OrderCreated struct {
	BaseEvent
	PlanID int64  `json:"plan_id"`
	Amount string `json:"amount"`
}

func (e OrderCreated) EventName() string {
	return "orders.order.created"
}

// CheckoutSessionOpened is raised once the gateway returned a hosted checkout session.
type CheckoutSessionOpened struct {
	BaseEvent
	SessionID string `json:"session_id"`
}

func (e CheckoutSessionOpened) EventName() string {
	return "orders.checkout.opened"
}

// OrderStatusChanged is raised for every effective status transition.
type OrderStatusChanged struct {
	BaseEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

func (e OrderStatusChanged) EventName() string {
	switch e.To {
	case StatusPaid:
		return "orders.order.paid"
	case StatusCancelled:
		return "orders.order.cancelled"
	case StatusFailed:
		return "orders.order.failed"
	default:
		return "orders.order.status_changed"
	}
}

// ReceiptIssued is raised when a receipt number is assigned for the first time.
type ReceiptIssued struct {
	BaseEvent
	ReceiptNumber string `json:"receipt_number"`
}

func (e ReceiptIssued) EventName() string {
	return "orders.receipt.issued"
}
