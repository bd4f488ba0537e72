package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	// Redis 相关指标
	redisCommandsTotal   metric.Int64Counter
	redisCommandDuration metric.Float64Histogram
)

func init() {
	_ = InitRedisMetrics(otel.Meter("safecall/redis"))
}

// InitRedisMetrics 初始化 Redis 指标
func InitRedisMetrics(meter metric.Meter) error {
	var err error

	redisCommandsTotal, err = meter.Int64Counter(
		"redis.commands.total",
		metric.WithDescription("Total number of Redis commands"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return err
	}

	redisCommandDuration, err = meter.Float64Histogram(
		"redis.command.duration",
		metric.WithDescription("Redis command duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	return err
}

// TracingHook Redis 追踪 Hook
type TracingHook struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

func NewTracingHook(serviceName string, db int) *TracingHook {
	return &TracingHook{
		tracer: otel.Tracer(serviceName + ".redis"),
		attrs: []attribute.KeyValue{
			attribute.String("db.system", "redis"),
			attribute.Int("db.redis.database_index", db),
		},
	}
}

func (th *TracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (th *TracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, span := th.tracer.Start(ctx, "redis."+cmd.Name(),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(th.attrs...),
		)
		defer span.End()

		span.SetAttributes(attribute.String("db.operation", cmd.Name()))
		if keys := extractKeys(cmd.Args()); len(keys) > 0 {
			span.SetAttributes(attribute.StringSlice("redis.keys", keys))
		}

		startTime := time.Now()
		err := next(ctx, cmd)
		duration := time.Since(startTime).Seconds()

		status := commandStatus(err)
		if status == "error" {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}

		labels := metric.WithAttributes(
			attribute.String("redis.command", cmd.Name()),
			attribute.String("redis.status", status),
		)
		redisCommandsTotal.Add(ctx, 1, labels)
		redisCommandDuration.Record(ctx, duration, labels)

		return err
	}
}

func (th *TracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, span := th.tracer.Start(ctx, "redis.pipeline",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(th.attrs...),
		)
		defer span.End()

		span.SetAttributes(attribute.Int("redis.pipeline.count", len(cmds)))

		err := next(ctx, cmds)
		redisCommandsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("redis.command", "pipeline"),
			attribute.String("redis.status", commandStatus(err)),
		))
		return err
	}
}

func commandStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, redis.Nil):
		return "not_found"
	default:
		return "error"
	}
}

// multiKeyCommands 全部参数都是键的命令
var multiKeyCommands = map[string]bool{
	"del":    true,
	"exists": true,
	"mget":   true,
	"touch":  true,
	"unlink": true,
	"watch":  true,
}

const maxTracedKeys = 3

// extractKeys 只取键所在位置的参数，值和选项不会写进 span
func extractKeys(args []interface{}) []string {
	if len(args) < 2 {
		return nil
	}

	name, _ := args[0].(string)
	name = strings.ToLower(name)

	step := 0
	switch {
	case multiKeyCommands[name]:
		step = 1
	case name == "mset" || name == "msetnx":
		step = 2
	}

	if step == 0 {
		if key, ok := args[1].(string); ok {
			return []string{sanitizeKey(key)}
		}
		return nil
	}

	keys := make([]string, 0, maxTracedKeys)
	for i := 1; i < len(args) && len(keys) < maxTracedKeys; i += step {
		if key, ok := args[i].(string); ok {
			keys = append(keys, sanitizeKey(key))
		}
	}
	return keys
}

// sanitizeKey 限制键名长度
func sanitizeKey(key string) string {
	if len(key) > 100 {
		return key[:100] + "..."
	}
	return strings.TrimSpace(key)
}

// InstrumentClient 为 Redis 客户端添加追踪 Hook
func InstrumentClient(client *redis.Client, serviceName string, db int) {
	client.AddHook(NewTracingHook(serviceName, db))
}
