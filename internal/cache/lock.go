package cache

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"SafeCall/storage/redis"
)

// 通过 SetNX 实现分布式锁，多个实例共享同一呼叫入口的 pending 状态
const (
	lockPrefix = "lock"
)

// Locker 呼叫入口的 pending 锁。TTL 兜底，防止进程退出后锁永久残留。
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RedisLocker 基于 Redis SETNX，breaker 打开时直接返回 ErrCircuitOpen
type RedisLocker struct {
	client  redislib.Cmdable
	breaker *CircuitBreaker
}

// NewRedisLocker breaker 为 nil 时不做熔断
func NewRedisLocker(client redislib.Cmdable, breaker *CircuitBreaker) *RedisLocker {
	return &RedisLocker{client: client, breaker: breaker}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullkey := redis.Key(lockPrefix, key)

	var acquired bool
	err := l.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		acquired, err = l.client.SetNX(ctx, fullkey, 1, ttl).Result()
		return err
	})
	return acquired, err
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	fullkey := redis.Key(lockPrefix, key)

	return l.breaker.Call(ctx, func(ctx context.Context) error {
		return l.client.Del(ctx, fullkey).Err()
	})
}

// MemoryLocker 进程内实现，未配置 Redis 时使用
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, ok := l.held[key]; ok && (expiry.IsZero() || now.Before(expiry)) {
		return false, nil
	}

	var expiry time.Time
	if ttl > 0 {
		expiry = now.Add(ttl)
	}
	l.held[key] = expiry
	return true, nil
}

func (l *MemoryLocker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
	return nil
}

// Default Redis 可用时返回 RedisLocker，否则返回进程内实现
func Default() Locker {
	if redis.Enabled() {
		return NewRedisLocker(redis.Client(), RedisBreaker)
	}
	return NewMemoryLocker()
}
