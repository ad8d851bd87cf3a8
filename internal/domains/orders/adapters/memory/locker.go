package memory

import (
	"context"
	"sync"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.Locker = (*Locker)(nil)

// Locker hands out one in-process lock per order id.
type Locker struct {
	mu    sync.Mutex
	slots map[int64]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocker() *Locker {
	return &Locker{slots: map[int64]*lockSlot{}}
}

func (l *Locker) Lock(ctx context.Context, orderID int64) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[orderID]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[orderID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(orderID, slot)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.release(orderID, slot)
		})
	}, nil
}

func (l *Locker) release(orderID int64, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, orderID)
	}
}
