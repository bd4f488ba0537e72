package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"SafeCall/pkg/logger"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行
	StateOpen                  // 熔断中，直接失败
	StateHalfOpen              // 放少量请求试探恢复
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen 熔断期间的调用不会触达 Redis
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker Redis 调用熔断器。Redis 宕机时呼叫锁和限流立即降级，不再逐个请求等待超时。
type CircuitBreaker struct {
	name             string
	maxFailures      int
	resetTimeout     time.Duration
	halfOpenMaxCalls int
	now              func() time.Time

	mu            sync.Mutex
	state         State
	failures      int
	lastFailTime  time.Time
	halfOpenCalls int
}

func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		name:             name,
		maxFailures:      maxFailures,
		resetTimeout:     resetTimeout,
		halfOpenMaxCalls: 1,
		now:              time.Now,
		state:            StateClosed,
	}
}

// RedisBreaker 连续失败 5 次后熔断，30 秒后试探
var RedisBreaker = NewCircuitBreaker("redis", 5, 30*time.Second)

// Call 执行受保护的操作；cb 为 nil 时直接执行
func (cb *CircuitBreaker) Call(ctx context.Context, operation func(ctx context.Context) error) error {
	if cb == nil {
		return operation(ctx)
	}
	if !cb.allowRequest() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}

	err := operation(ctx)
	cb.recordResult(err)
	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastFailTime) >= cb.resetTimeout {
		cb.transitionTo(StateHalfOpen)
	}

	switch cb.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.halfOpenMaxCalls {
			return false
		}
		cb.halfOpenCalls++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	// 调用方取消不算 Redis 故障
	if errors.Is(err, context.Canceled) {
		cb.mu.Lock()
		if cb.state == StateHalfOpen && cb.halfOpenCalls > 0 {
			cb.halfOpenCalls--
		}
		cb.mu.Unlock()
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failures = 0
		if cb.state != StateClosed {
			cb.transitionTo(StateClosed)
		}
		return
	}

	cb.failures++
	cb.lastFailTime = cb.now()

	logger.Logger.Warn("Redis operation failed",
		zap.String("breaker", cb.name),
		zap.Int("failures", cb.failures),
		zap.String("state", cb.state.String()),
		zap.Error(err),
	)

	if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
		cb.transitionTo(StateOpen)
	}
}

func (cb *CircuitBreaker) transitionTo(state State) {
	cb.state = state
	cb.halfOpenCalls = 0
	if state == StateClosed {
		cb.failures = 0
	}

	logger.Logger.Info("Circuit breaker state changed",
		zap.String("breaker", cb.name),
		zap.String("state", state.String()),
		zap.Duration("reset_timeout", cb.resetTimeout),
	)
}

// State 当前状态，open 超时后在下一次调用时才转为 half-open
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// Reset 回到 closed，测试与运维使用
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.transitionTo(StateClosed)
}
