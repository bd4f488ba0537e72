package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"SafeCall/config"
)

var (
	conn     *amqp.Connection
	connMu   sync.RWMutex
	initOnce sync.Once
	initErr  error
)

// Init 建立连接并声明呼叫通知的 exchange 与 queue，RABBITMQ_ADDR 未配置时直接返回
func Init() error {
	initOnce.Do(func() {
		cfg := config.Cfg
		if !cfg.RabbitMQEnabled() {
			return
		}

		c, err := amqp.Dial(cfg.GetRabbitMQURL())
		if err != nil {
			initErr = fmt.Errorf("failed to dial rabbitmq: %w", err)
			return
		}

		if err := declareTopology(c, cfg.DispatchExchange, cfg.DispatchQueue, DispatchResolvedRoutingKey); err != nil {
			_ = c.Close()
			initErr = err
			return
		}

		connMu.Lock()
		conn = c
		connMu.Unlock()
	})

	return initErr
}

// DispatchResolvedRoutingKey 呼叫完成消息的 routing key
const DispatchResolvedRoutingKey = "dispatch.resolved"

func declareTopology(c *amqp.Connection, exchange, queue, routingKey string) error {
	ch, err := c.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}

	return nil
}

// Enabled 连接已建立时为 true
func Enabled() bool {
	return Connection() != nil
}

func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()

	return conn
}

// Close 先关闭发布 channel，再关闭连接
func Close(ctx context.Context) error {
	closePublisherChannel()

	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	err := conn.Close()
	conn = nil
	return err
}
