package types

// CreateCheckoutInput captures a checkout request for one catalog plan.
type CreateCheckoutInput struct {
	PlanID         int64
	CustomerEmail  string
	OriginHint     string
	IdempotencyKey string
}

// PendingOrder identifies the order created for a checkout before the gateway session opens.
type PendingOrder struct {
	OrderID int64
	PlanID  int64
}

// OpenSessionInput asks the gateway to open a hosted checkout for an existing pending order.
type OpenSessionInput struct {
	OrderID    int64
	OriginHint string
}

// CheckoutResult is returned to the buyer so the browser can be redirected to the gateway.
type CheckoutResult struct {
	RedirectURL string
	OrderID     int64
	SessionID   string
}

// Receipt carries a rendered receipt document.
type Receipt struct {
	OrderID int64
	Number  string
	Content []byte
}

// Filename returns the download name for the receipt document.
func (r Receipt) Filename() string {
	return "receipt_" + r.Number + ".pdf"
}
