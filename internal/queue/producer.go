package queue

import (
	"context"

	"go.uber.org/zap"

	"SafeCall/internal/model"
	"SafeCall/pkg/logger"
	"SafeCall/storage/mq"
)

// PublishFunc 发送消息的底层实现，默认为 mq.PublishMessage
type PublishFunc func(ctx context.Context, exchange, routingKey, messageID string, body interface{}) error

// Publisher 把呼叫完成提示发布到 RabbitMQ，实现 service.Notifier
type Publisher struct {
	exchange string
	publish  PublishFunc
}

func NewPublisher(exchange string) *Publisher {
	return &Publisher{exchange: exchange, publish: mq.PublishMessage}
}

// WithPublishFunc 替换底层发送实现
func (p *Publisher) WithPublishFunc(fn PublishFunc) *Publisher {
	p.publish = fn
	return p
}

func (p *Publisher) Notify(ctx context.Context, n model.Notification) error {
	msg := newDispatchResolvedMessage(n)

	if err := p.publish(ctx, p.exchange, mq.DispatchResolvedRoutingKey, msg.MessageID, msg); err != nil {
		logger.Logger.Error("Failed to publish dispatch resolved message",
			zap.String("message_id", msg.MessageID),
			zap.String("surface", msg.Surface),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Debug("Published dispatch resolved message",
		zap.String("message_id", msg.MessageID),
		zap.String("exchange", p.exchange),
	)
	return nil
}
