package storage

import (
	"fmt"

	"go.uber.org/zap"

	"SafeCall/pkg/logger"
	"SafeCall/storage/mq"
	"SafeCall/storage/redis"
)

// Init 建立已配置的外部连接，未配置的组件会退回进程内实现
func Init() error {
	if err := redis.Init(); err != nil {
		return fmt.Errorf("failed to init redis: %w", err)
	}

	if err := mq.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitmq: %w", err)
	}

	logger.Logger.Info("Storage initialized",
		zap.Bool("redis", redis.Enabled()),
		zap.Bool("rabbitmq", mq.Enabled()),
	)
	return nil
}
