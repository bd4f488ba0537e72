package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	// HTTP 相关指标
	httpServerRequestTotal   metric.Int64Counter
	httpServerDuration       metric.Float64Histogram
	httpServerActiveRequests metric.Int64UpDownCounter
)

func init() {
	// 全局 Meter 在 SDK 安装后自动委托
	_ = InitMetrics(otel.Meter("safecall/http"))
}

// toValidUTF8 清洗用户可控字符串，防止非法 UTF-8 触发序列化失败
func toValidUTF8(val string) string {
	return strings.ToValidUTF8(val, "")
}

// InitMetrics 初始化指标
func InitMetrics(meter metric.Meter) error {
	var err error

	httpServerRequestTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	httpServerDuration, err = meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return err
	}

	httpServerActiveRequests, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	return err
}

// MetricsMiddleware 记录请求数、耗时与活跃请求，并把 request_id 写入当前 span
func MetricsMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		startTime := time.Now()
		httpServerActiveRequests.Add(ctx, 1)
		defer httpServerActiveRequests.Add(ctx, -1)

		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			if requestID := c.GetString(RequestIDKey); requestID != "" {
				span.SetAttributes(attribute.String("http.request_id", toValidUTF8(requestID)))
			}
			if surface := c.Param("surface"); surface != "" {
				span.SetAttributes(attribute.String("dispatch.surface", toValidUTF8(surface)))
			}
		}

		c.Next(ctx)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		labels := metric.WithAttributes(
			attribute.String("http.method", toValidUTF8(string(c.Method()))),
			attribute.String("http.route", route),
			attribute.String("http.status_code", strconv.Itoa(c.Response.StatusCode())),
		)
		httpServerRequestTotal.Add(ctx, 1, labels)
		httpServerDuration.Record(ctx, time.Since(startTime).Seconds(), labels)
	}
}

// NewServerTracerConfig 创建 Hertz Server 的追踪配置
// 返回用于初始化 Hertz server 的配置选项和追踪中间件
func NewServerTracerConfig(opts ...hertztracing.Option) (config.Option, app.HandlerFunc) {
	tracer, cfg := hertztracing.NewServerTracer(opts...)
	return tracer, hertztracing.ServerMiddleware(cfg)
}
