package mq

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"SafeCall/config"
	"SafeCall/pkg/logger"
	mqotel "SafeCall/pkg/mq"
)

// MessageHandler 返回 nil 时 ack；返回 SkipError 时 ack 但不重试；其它错误 nack 并重新入队
type MessageHandler func(ctx context.Context, body []byte) error

// SkipError 消息已处理过或无法处理，直接确认
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skip message: " + e.Reason
}

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 阻塞消费直到 ctx 取消或 channel 关闭
func Consume(ctx context.Context, opts ConsumeOptions) error {
	c := Connection()
	if c == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := c.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	ic := mqotel.NewInstrumentedChannel(ch, config.Cfg.ServiceName)
	msgs, err := ic.Consume(
		ctx,
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("Consumer stopped", zap.String("queue", opts.Queue))
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", opts.Queue)
			}
			handleDelivery(opts, d)
		}
	}
}

func handleDelivery(opts ConsumeOptions, d mqotel.Delivery) {
	err := opts.Handler(d.Context, d.Body)

	var skip *SkipError
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.As(err, &skip):
		logger.Logger.Info("Message skipped",
			zap.String("queue", opts.Queue),
			zap.String("message_id", d.MessageId),
			zap.String("reason", skip.Reason),
		)
		_ = d.Ack(false)
	default:
		logger.Logger.Error("Failed to process message",
			zap.String("queue", opts.Queue),
			zap.String("consumer_tag", opts.ConsumerTag),
			zap.String("message_id", d.MessageId),
			zap.Error(err),
		)
		// 已经重投过一次的消息不再入队，避免毒消息死循环
		_ = d.Nack(false, !d.Redelivered)
	}
}
