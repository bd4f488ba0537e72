package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var (
	// RabbitMQ 相关指标
	mqMessagesTotal   metric.Int64Counter
	mqMessageDuration metric.Float64Histogram
	mqPublishErrors   metric.Int64Counter
	mqConsumeErrors   metric.Int64Counter
)

func init() {
	// 全局 Meter 在 SDK 安装后自动委托，未安装时为 no-op
	_ = InitMQMetrics(otel.Meter("safecall/rabbitmq"))
}

// InitMQMetrics 初始化 RabbitMQ 指标
func InitMQMetrics(meter metric.Meter) error {
	var err error

	mqMessagesTotal, err = meter.Int64Counter(
		"mq.messages.total",
		metric.WithDescription("Total number of RabbitMQ messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	mqMessageDuration, err = meter.Float64Histogram(
		"mq.message.duration",
		metric.WithDescription("RabbitMQ publish duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
	)
	if err != nil {
		return err
	}

	mqPublishErrors, err = meter.Int64Counter(
		"mq.publish.errors",
		metric.WithDescription("Number of RabbitMQ publish errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mqConsumeErrors, err = meter.Int64Counter(
		"mq.consume.errors",
		metric.WithDescription("Number of RabbitMQ consume errors"),
		metric.WithUnit("{error}"),
	)
	return err
}

// Delivery 带有从消息头提取出的追踪上下文
type Delivery struct {
	amqp.Delivery
	Context context.Context
}

// InstrumentedChannel 包装 amqp.Channel 以添加 OpenTelemetry 支持
type InstrumentedChannel struct {
	ch          *amqp.Channel
	serviceName string
	propagators propagation.TextMapPropagator
	tracer      trace.Tracer
}

func NewInstrumentedChannel(ch *amqp.Channel, serviceName string) *InstrumentedChannel {
	return &InstrumentedChannel{
		ch:          ch,
		serviceName: serviceName,
		propagators: otel.GetTextMapPropagator(),
		tracer:      otel.Tracer(serviceName + ".rabbitmq"),
	}
}

// PublishWithContext 发布消息并把追踪上下文注入消息头
func (ic *InstrumentedChannel) PublishWithContext(
	ctx context.Context,
	exchange, routingKey string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	startTime := time.Now()

	spanName := "rabbitmq.publish"
	if exchange != "" {
		spanName = "rabbitmq.publish." + exchange
	}

	ctx, span := ic.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination.name", exchange),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
			attribute.String("messaging.message.id", msg.MessageId),
		),
	)
	defer span.End()

	msg.Headers = InjectHeaders(ctx, ic.propagators, msg.Headers)

	err := ic.ch.PublishWithContext(ctx, exchange, routingKey, mandatory, immediate, msg)
	duration := time.Since(startTime).Seconds()

	status := "success"
	if err != nil {
		status = "error"
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		mqPublishErrors.Add(ctx, 1)
	}

	labels := metric.WithAttributes(
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.rabbitmq.exchange", exchange),
		attribute.String("messaging.status", status),
	)
	mqMessagesTotal.Add(ctx, 1, labels)
	mqMessageDuration.Record(ctx, duration, labels)

	return err
}

// Consume 开始消费，每条消息附带提取出的追踪上下文。ctx 取消后停止转发。
func (ic *InstrumentedChannel) Consume(
	ctx context.Context,
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan Delivery, error) {
	msgs, err := ic.ch.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	if err != nil {
		mqConsumeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("messaging.rabbitmq.queue", queue)))
		return nil, err
	}

	out := make(chan Delivery)
	go func() {
		defer close(out)
		for msg := range msgs {
			d := Delivery{
				Delivery: msg,
				Context:  ic.propagators.Extract(ctx, &MessageHeaderCarrier{Headers: msg.Headers}),
			}
			mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("messaging.operation", "consume"),
				attribute.String("messaging.rabbitmq.queue", queue),
				attribute.String("messaging.status", "received"),
			))

			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// InjectHeaders 复制 headers 并写入追踪上下文
func InjectHeaders(ctx context.Context, propagators propagation.TextMapPropagator, headers amqp.Table) amqp.Table {
	out := make(amqp.Table, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	propagators.Inject(ctx, &MessageHeaderCarrier{Headers: out})
	return out
}

// MessageHeaderCarrier 实现 propagation.TextMapCarrier 接口
type MessageHeaderCarrier struct {
	Headers amqp.Table
}

func (m *MessageHeaderCarrier) Get(key string) string {
	if val, ok := m.Headers[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (m *MessageHeaderCarrier) Set(key, value string) {
	if m.Headers == nil {
		m.Headers = make(amqp.Table)
	}
	m.Headers[key] = value
}

func (m *MessageHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	return keys
}
