package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/internal/cache"
	"SafeCall/internal/queue"
	"SafeCall/pkg/logger"
	"SafeCall/storage"
	"SafeCall/storage/mq"
)

// worker 消费呼叫完成消息并写审计日志，需要 RabbitMQ
func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if !mq.Enabled() {
		logger.Logger.Fatal("RabbitMQ is not configured, set RABBITMQ_ADDR to run the worker")
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("queue", config.Cfg.DispatchQueue),
		zap.String("environment", config.Cfg.Environment),
	)

	if err := queue.StartDispatchResolvedConsumer(ctx, config.Cfg.DispatchQueue, cache.Default(), queue.LogDispatchResolved); err != nil {
		logger.Logger.Error("Consumer exited with error", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
