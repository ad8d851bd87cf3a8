package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocker_SerializesSameOrder(t *testing.T) {
	locker := NewLocker()
	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(context.Background(), 2)
	require.NoError(t, err)
	other()

	unlock()
	again, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	again()
	require.Empty(t, locker.slots)
}

func TestLocker_ConcurrentCounter(t *testing.T) {
	locker := NewLocker()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), 9)
			if err != nil {
				return
			}
			counter++
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
}
