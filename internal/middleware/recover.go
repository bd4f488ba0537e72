package middleware

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/response"
)

// RecoverConfig recover 中间件配置
type RecoverConfig struct {
	// 是否启用堆栈追踪
	EnableStackTrace bool
	// 生产环境不返回 panic 详情
	IsProduction bool
	// 严重错误回调函数（可用于发送告警）
	OnSevereError func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte)
}

func NewRecoverConfig() RecoverConfig {
	return RecoverConfig{
		EnableStackTrace: true,
		IsProduction:     config.Cfg.IsProduction(),
	}
}

func RecoverMiddleware() app.HandlerFunc {
	return RecoverMiddlewareWithConfig(NewRecoverConfig())
}

func RecoverMiddlewareWithConfig(cfg RecoverConfig) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, cfg RecoverConfig) {
	var stack []byte
	if cfg.EnableStackTrace {
		stack = getStackTrace()
	}

	logPanic(ctx, c, err, stack)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(fmt.Errorf("panic: %v", err))
		span.SetStatus(codes.Error, "panic recovered")
	}

	if cfg.OnSevereError != nil && isSeverePanic(err) {
		cfg.OnSevereError(ctx, c, err, stack)
	}

	writeErrorResponse(ctx, c, err, stack, cfg)
	c.Abort()
}

func writeErrorResponse(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte, cfg RecoverConfig) {
	if cfg.IsProduction {
		response.Error(ctx, c, errors.InternalError)
		return
	}

	details := map[string]interface{}{
		"panic":     fmt.Sprintf("%v", err),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if len(stack) > 0 {
		details["stack"] = string(stack)
	}
	response.ErrorWithDetails(ctx, c, errors.InternalError, details)
}

// getStackTrace 当前 goroutine 的调用栈，跳过 runtime 与 recover 本身
func getStackTrace() []byte {
	var buf bytes.Buffer
	buf.WriteString("goroutine panic:\n")

	for i := 3; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "/runtime/") {
			continue
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		fmt.Fprintf(&buf, "  %s:%d\n    %s\n", file, line, fn.Name())
	}

	return buf.Bytes()
}

func logPanic(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", c.GetString(RequestIDKey)),
	}
	if len(stack) > 0 {
		fields = append(fields, zap.ByteString("stack", stack))
	}

	logger.Logger.Error("[PANIC RECOVERED]", fields...)
}

// isSeverePanic 运行时致命错误
func isSeverePanic(err interface{}) bool {
	if err == nil {
		return false
	}

	errStr := fmt.Sprintf("%v", err)
	for _, pattern := range []string{
		"runtime: out of memory",
		"fatal error:",
		"concurrent map writes",
		"concurrent map read and map write",
		"all goroutines are asleep - deadlock!",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
