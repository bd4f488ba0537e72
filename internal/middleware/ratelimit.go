package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/internal/cache"
	"SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/response"
	"SafeCall/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口（秒）
	Window int
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
	// 超过限制后禁止访问的时间（秒），0 表示不封禁
	BlockDuration int
	// Redis 熔断器，nil 表示不熔断
	Breaker *cache.CircuitBreaker
}

// CallRateLimitConfig 呼叫接口按 IP 限流，防止脚本刷接口
func CallRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Window:        config.Cfg.RateLimitWindow,
		MaxRequests:   config.Cfg.RateLimitMax,
		KeyPrefix:     "rate:calls",
		BlockDuration: 300,
		Breaker:       cache.RedisBreaker,
	}
}

// RateLimiter 基于 Redis zset 的滑动窗口限流器
type RateLimiter struct {
	config RateLimitConfig
	client redislib.Cmdable
	now    func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig, client redislib.Cmdable) *RateLimiter {
	return &RateLimiter{config: cfg, client: client, now: time.Now}
}

func (rl *RateLimiter) key(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, "ip", c.ClientIP())
}

func (rl *RateLimiter) blockKey(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, "block", "ip", c.ClientIP())
}

// Allow 记录本次请求并返回窗口内的请求数
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.key(c)
	now := rl.now()
	windowStart := now.Add(-time.Duration(rl.config.Window) * time.Second)

	var zcardCmd *redislib.IntCmd
	err := rl.config.Breaker.Call(ctx, func(ctx context.Context) error {
		pipe := rl.client.Pipeline()
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
		pipe.ZAdd(ctx, key, redislib.Z{
			Score:  float64(now.UnixNano()),
			Member: now.UnixNano(),
		})
		zcardCmd = pipe.ZCard(ctx, key)
		pipe.Expire(ctx, key, time.Duration(rl.config.Window+10)*time.Second)

		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcardCmd.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) Block(ctx context.Context, c *app.RequestContext) error {
	if rl.config.BlockDuration <= 0 {
		return nil
	}
	return rl.config.Breaker.Call(ctx, func(ctx context.Context) error {
		return rl.client.Set(ctx, rl.blockKey(c), "1", time.Duration(rl.config.BlockDuration)*time.Second).Err()
	})
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, c *app.RequestContext) (bool, error) {
	if rl.config.BlockDuration <= 0 {
		return false, nil
	}
	var n int64
	err := rl.config.Breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		n, err = rl.client.Exists(ctx, rl.blockKey(c)).Result()
		return err
	})
	return n > 0, err
}

// RateLimitMiddleware client 为 nil 时直接放行。Redis 出错时也放行，呼叫接口不能因限流故障不可用。
func RateLimitMiddleware(cfg RateLimitConfig, client redislib.Cmdable) app.HandlerFunc {
	if client == nil || cfg.MaxRequests <= 0 {
		return func(ctx context.Context, c *app.RequestContext) {
			c.Next(ctx)
		}
	}

	limiter := NewRateLimiter(cfg, client)

	return func(ctx context.Context, c *app.RequestContext) {
		blocked, err := limiter.IsBlocked(ctx, c)
		if err != nil {
			logger.Logger.Warn("Failed to check block status", zap.Error(err))
			c.Next(ctx)
			return
		}
		if blocked {
			response.Error(ctx, c, errors.RateLimited)
			c.Abort()
			return
		}

		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			if err := limiter.Block(ctx, c); err != nil {
				logger.Logger.Warn("Failed to block client", zap.Error(err))
			}
			logger.Logger.Info("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", string(c.Path())),
			)
			response.Error(ctx, c, errors.RateLimited)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// CallRateLimitMiddleware 呼叫接口限流，未启用或 Redis 未连接时放行
func CallRateLimitMiddleware() app.HandlerFunc {
	if !config.Cfg.RateLimitEnabled || !redis.Enabled() {
		return RateLimitMiddleware(CallRateLimitConfig(), nil)
	}
	return RateLimitMiddleware(CallRateLimitConfig(), redis.Client())
}
