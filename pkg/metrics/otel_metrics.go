package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 呼叫相关指标
	DispatchInitiatedTotal metric.Int64Counter
	DispatchRejectedTotal  metric.Int64Counter
	DispatchResolvedTotal  metric.Int64Counter
	DispatchPending        metric.Int64UpDownCounter
	DispatchDuration       metric.Float64Histogram
	NotifyFailedTotal      metric.Int64Counter

	// 联系人相关指标
	ContactsAddedTotal   metric.Int64Counter
	ContactsRemovedTotal metric.Int64Counter
	ContactsRejected     metric.Int64Counter
}

var (
	metrics *OTelMetrics
	initErr error
	once    sync.Once
)

// Init 使用全局 MeterProvider 创建指标；在 otel 初始化之后调用。
// 未调用时 GetMetrics 会以默认（no-op）Provider 创建。
func Init() error {
	once.Do(func() {
		metrics, initErr = New(otel.Meter("safecall"))
	})
	return initErr
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	if err := Init(); err != nil || metrics == nil {
		m, _ := New(otel.Meter("safecall"))
		return m
	}
	return metrics
}

// New 用给定 meter 创建指标集合
func New(meter metric.Meter) (*OTelMetrics, error) {
	var err error
	m := &OTelMetrics{}

	m.DispatchInitiatedTotal, err = meter.Int64Counter(
		"dispatch_initiated_total",
		metric.WithDescription("Total number of simulated calls started"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.DispatchRejectedTotal, err = meter.Int64Counter(
		"dispatch_rejected_total",
		metric.WithDescription("Calls ignored because the surface already had one pending"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.DispatchResolvedTotal, err = meter.Int64Counter(
		"dispatch_resolved_total",
		metric.WithDescription("Total number of simulated calls resolved"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.DispatchPending, err = meter.Int64UpDownCounter(
		"dispatch_pending",
		metric.WithDescription("Number of calls currently pending"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	m.DispatchDuration, err = meter.Float64Histogram(
		"dispatch_duration_seconds",
		metric.WithDescription("Time from initiation to resolution"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.NotifyFailedTotal, err = meter.Int64Counter(
		"dispatch_notify_failed_total",
		metric.WithDescription("Notifications that could not be delivered"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	m.ContactsAddedTotal, err = meter.Int64Counter(
		"contacts_added_total",
		metric.WithDescription("Emergency contacts added"),
		metric.WithUnit("{contact}"),
	)
	if err != nil {
		return nil, err
	}

	m.ContactsRemovedTotal, err = meter.Int64Counter(
		"contacts_removed_total",
		metric.WithDescription("Emergency contacts removed"),
		metric.WithUnit("{contact}"),
	)
	if err != nil {
		return nil, err
	}

	m.ContactsRejected, err = meter.Int64Counter(
		"contacts_rejected_total",
		metric.WithDescription("Contact drafts rejected by validation"),
		metric.WithUnit("{contact}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func targetAttrs(surface, kind string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("surface", surface),
		attribute.String("target_kind", kind),
	)
}

// RecordDispatchStarted 呼叫进入 pending
func (m *OTelMetrics) RecordDispatchStarted(ctx context.Context, surface, kind string) {
	m.DispatchInitiatedTotal.Add(ctx, 1, targetAttrs(surface, kind))
	m.DispatchPending.Add(ctx, 1, metric.WithAttributes(attribute.String("surface", surface)))
}

// RecordDispatchRejected 重复触发被忽略
func (m *OTelMetrics) RecordDispatchRejected(ctx context.Context, surface string) {
	m.DispatchRejectedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("surface", surface)))
}

// RecordDispatchResolved 呼叫完成
func (m *OTelMetrics) RecordDispatchResolved(ctx context.Context, surface, kind string, seconds float64) {
	m.DispatchResolvedTotal.Add(ctx, 1, targetAttrs(surface, kind))
	m.DispatchPending.Add(ctx, -1, metric.WithAttributes(attribute.String("surface", surface)))
	m.DispatchDuration.Record(ctx, seconds, targetAttrs(surface, kind))
}

// RecordNotifyFailed 通知投递失败
func (m *OTelMetrics) RecordNotifyFailed(ctx context.Context, surface string) {
	m.NotifyFailedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("surface", surface)))
}

func (m *OTelMetrics) RecordContactAdded(ctx context.Context) {
	m.ContactsAddedTotal.Add(ctx, 1)
}

func (m *OTelMetrics) RecordContactRemoved(ctx context.Context) {
	m.ContactsRemovedTotal.Add(ctx, 1)
}

func (m *OTelMetrics) RecordContactRejected(ctx context.Context, field string) {
	m.ContactsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}
