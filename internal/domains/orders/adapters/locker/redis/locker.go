package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.Locker = (*Locker)(nil)

const (
	keyOrderLock   = "lock:order:%d"
	defaultTTL     = 30 * time.Second
	defaultBackoff = 25 * time.Millisecond
)

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker holds per-order locks in Redis so several API replicas serialize the same order.
type Locker struct {
	client  goredis.UniversalClient
	ttl     time.Duration
	backoff time.Duration
}

func NewLocker(client goredis.UniversalClient) *Locker {
	return &Locker{client: client, ttl: defaultTTL, backoff: defaultBackoff}
}

func (l *Locker) Lock(ctx context.Context, orderID int64) (func(), error) {
	if l == nil || l.client == nil {
		return nil, errors.New("redis locker not configured")
	}
	key := fmt.Sprintf(keyOrderLock, orderID)
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire order lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}, nil
}
