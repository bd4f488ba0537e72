package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"SafeCall/internal/model"
	"SafeCall/pkg/logger"
	"SafeCall/utils"
)

// Notifier 接收呼叫完成的提示。返回的错误只会被记录，不影响呼叫状态。
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

type NotifierFunc func(ctx context.Context, n model.Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n model.Notification) error {
	return f(ctx, n)
}

// LogNotifier 把提示写入日志，号码脱敏
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n model.Notification) error {
	logger.Logger.Info("Dispatch resolved",
		zap.String("dispatch_id", n.DispatchID),
		zap.String("surface", n.Surface),
		zap.String("label", n.Label),
		zap.String("number_masked", utils.MaskPhone(n.Number)),
	)
	return nil
}

// MultiNotifier 依次通知全部下游，单个失败不影响其它
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n model.Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
