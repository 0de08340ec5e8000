package booking_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serialises the overlap check and the insert of a booking per item.
// Without it two concurrent requests could both pass the check and both commit.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func itemLockKey(itemID uuid.UUID) string {
	return "booking_lock:item:" + itemID.String()
}

// LocalLocker is a keyed mutex valid within a single process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyedLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyedLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}

func (l *LocalLocker) release(key string, kl *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

const (
	RedisLockTTL        = 10 * time.Second
	redisLockRetryDelay = 25 * time.Millisecond
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker holds the per-item lock in Redis so that several service
// instances sharing one database serialise on the same key.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, ttl: RedisLockTTL}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	for {
		set, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("waiting for lock %s: %w", key, err)
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if set {
			break
		}

		select {
		case <-time.After(redisLockRetryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release with a fresh context: the request context may already be done.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := unlockScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
				logger.ErrorLogger.Errorf("Failed to release lock %s: %v", key, err)
			}
		})
	}, nil
}
