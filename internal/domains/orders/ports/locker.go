package ports

import "context"

// Locker serializes mutations of a single order.
type Locker interface {
	// Lock blocks until the order is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, orderID int64) (func(), error)
}
