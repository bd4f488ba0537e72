package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/internal/middleware"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/otel"
)

// setupTracing TRACING_ENABLED 时安装 OTLP 导出器和 hertz 追踪中间件，失败时降级为不上报
func setupTracing(ctx context.Context, cfg config.Config) ([]hertzconfig.Option, app.HandlerFunc, func()) {
	noop := func() {}
	if !cfg.TracingEnabled {
		return nil, nil, noop
	}

	shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRatio:    cfg.TracingSampler,
	})
	if err != nil {
		logger.Logger.Warn("Failed to initialize OpenTelemetry, tracing disabled", zap.Error(err))
		return nil, nil, noop
	}

	tracer, mw := middleware.NewServerTracerConfig()

	logger.Logger.Info("OpenTelemetry initialized",
		zap.String("endpoint", cfg.OTLPEndpoint),
		zap.Float64("sampler", cfg.TracingSampler),
	)

	return []hertzconfig.Option{tracer}, mw, func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}
}
