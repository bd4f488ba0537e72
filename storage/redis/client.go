package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"SafeCall/config"
	pkgredis "SafeCall/pkg/redis"
)

var (
	client *redis.Client
	once   sync.Once
	err    error
)

// Init 建立连接并 Ping，REDIS_ADDR 未配置时直接返回
func Init() error {
	once.Do(func() {
		cfg := config.Cfg
		if !cfg.RedisEnabled() {
			return
		}

		c := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			MinIdleConns: 5,
			MaxRetries:   3,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err = c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return
		}
		if cfg.TracingEnabled {
			pkgredis.InstrumentClient(c, cfg.ServiceName, cfg.RedisDB)
		}
		client = c
	})

	return err
}

// Enabled 连接已建立时为 true
func Enabled() bool {
	return client != nil
}

func Client() *redis.Client {
	if client == nil {
		panic("Redis client not init")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}

	return client.Close()
}

// Key 以配置的前缀拼接 key，空片段会被跳过
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "safecall"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}

	return sb.String()
}
