package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"SafeCall/pkg/logger"
	"SafeCall/storage/mq"
	"SafeCall/storage/redis"
)

// Close 优雅关闭所有外部连接，先 MQ 后 Redis
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	logger.Logger.Info("All storage connections closed")
}
