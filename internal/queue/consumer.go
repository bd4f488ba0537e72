package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"SafeCall/internal/cache"
	"SafeCall/pkg/logger"
	"SafeCall/storage/mq"
	"SafeCall/utils"
)

// 消息去重标记的保留时间
const processedTTL = 24 * time.Hour

// DispatchResolvedHandler 处理一条呼叫完成消息
type DispatchResolvedHandler func(ctx context.Context, msg DispatchResolvedMessage) error

// LogDispatchResolved 默认处理：写审计日志，号码脱敏
func LogDispatchResolved(ctx context.Context, msg DispatchResolvedMessage) error {
	logger.Logger.Info("Dispatch resolved",
		zap.String("message_id", msg.MessageID),
		zap.String("dispatch_id", msg.DispatchID),
		zap.String("surface", msg.Surface),
		zap.String("label", msg.Label),
		zap.String("number_masked", utils.MaskPhone(msg.Number)),
		zap.Time("resolved_at", msg.ResolvedAt),
	)
	return nil
}

// newMessageHandler 解码并按 MessageID 去重，处理失败时撤销标记以便重试
func newMessageHandler(locker cache.Locker, handle DispatchResolvedHandler) mq.MessageHandler {
	return func(ctx context.Context, body []byte) error {
		var msg DispatchResolvedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &mq.SkipError{Reason: fmt.Sprintf("malformed dispatch resolved message: %v", err)}
		}

		key := "message:" + msg.MessageID
		acquired, err := locker.TryLock(ctx, key, processedTTL)
		if err != nil {
			// 去重不可用时继续处理，可能重复
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !acquired {
			return &mq.SkipError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		if err := handle(ctx, msg); err != nil {
			if unlockErr := locker.Unlock(ctx, key); unlockErr != nil {
				logger.Logger.Warn("Failed to unmark message",
					zap.String("message_id", msg.MessageID),
					zap.Error(unlockErr),
				)
			}
			return fmt.Errorf("failed to handle dispatch resolved message: %w", err)
		}
		return nil
	}
}

// StartDispatchResolvedConsumer 阻塞消费呼叫完成消息直到 ctx 取消
func StartDispatchResolvedConsumer(ctx context.Context, queue string, locker cache.Locker, handle DispatchResolvedHandler) error {
	if handle == nil {
		handle = LogDispatchResolved
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         queue,
		ConsumerTag:   "dispatch_resolved_consumer",
		PrefetchCount: 10,
		Handler:       newMessageHandler(locker, handle),
	})
}
