package main

import (
	"context"
	"net"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/internal/cache"
	"SafeCall/internal/handler"
	"SafeCall/internal/model"
	"SafeCall/internal/queue"
	"SafeCall/internal/router"
	"SafeCall/internal/service"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/metrics"
	"SafeCall/pkg/snowflake"
	"SafeCall/storage"
	"SafeCall/storage/mq"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Cfg

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪，失败时降级为不上报
	var serverOpts []hertzconfig.Option
	tracerOpts, tracingMw, shutdownTracing := setupTracing(ctx, cfg)
	defer shutdownTracing()
	serverOpts = append(serverOpts, tracerOpts...)

	if err := metrics.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize metrics", zap.Error(err))
	}

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(cfg.SnowflakeMachineID, cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	contacts := service.NewContactStore()

	notifier := service.MultiNotifier{service.LogNotifier{}}
	if mq.Enabled() {
		notifier = append(notifier, queue.NewPublisher(cfg.DispatchExchange))
	}

	dispatcher := service.NewDispatcher(service.DispatcherOptions{
		Delay:    time.Duration(cfg.DispatchDelayMs) * time.Millisecond,
		Locker:   cache.Default(),
		Notifier: notifier,
		Contacts: contacts,
	})

	location := service.NewLocationTracker(locationProbe(cfg))
	location.Start(ctx)

	signUp := service.NewSignUpService(time.Duration(cfg.SignUpDelayMs) * time.Millisecond)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	serverOpts = append(serverOpts, server.WithHostPorts(addr))
	h := server.Default(serverOpts...)
	if tracingMw != nil {
		h.Use(tracingMw)
	}

	router.Register(h, handler.New(contacts, dispatcher, location, signUp))

	logger.Logger.Info("Server starting",
		zap.String("service", cfg.ServiceName),
		zap.String("addr", addr),
		zap.String("environment", cfg.Environment),
		zap.Duration("dispatch_delay", time.Duration(cfg.DispatchDelayMs)*time.Millisecond),
	)

	// Spin 自己处理 SIGINT/SIGTERM 并关闭 HTTP 服务
	h.Spin()

	// 等待 pending 呼叫发出通知，之后 defer 才关闭 RabbitMQ
	logger.Logger.Info("Waiting for pending dispatches...")
	cancel()
	if err := waitPending(dispatcher, dispatchDrainTimeout(cfg)); err != nil {
		logger.Logger.Warn("Pending dispatches did not resolve before shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server shutting down gracefully")
}

// dispatchDrainTimeout 至少覆盖一次完整的呼叫延迟加通知超时
func dispatchDrainTimeout(cfg config.Config) time.Duration {
	return time.Duration(cfg.DispatchDelayMs)*time.Millisecond + 5*time.Second
}

func waitPending(dispatcher *service.Dispatcher, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return dispatcher.WaitAll(waitCtx)
}

func locationProbe(cfg config.Config) service.Probe {
	if cfg.LocationDenied {
		return service.DeniedProbe{}
	}
	return service.StaticProbe{Coordinate: model.Coordinate{
		Latitude:  cfg.LocationLatitude,
		Longitude: cfg.LocationLongitude,
	}}
}
