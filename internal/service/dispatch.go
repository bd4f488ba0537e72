package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"SafeCall/internal/cache"
	"SafeCall/internal/model"
	pkgerrors "SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/metrics"
)

const (
	DefaultDispatchDelay = 500 * time.Millisecond

	// 锁的 TTL 在模拟延迟之外额外保留的时间
	lockGrace = 30 * time.Second
	// 下游通知的超时时间
	notifyTimeout = 5 * time.Second
)

var tracer = otel.Tracer("safecall/dispatch")

// ContactLookup 按 ID 查找联系人，ContactStore 实现了该接口
type ContactLookup interface {
	Get(id string) (model.Contact, bool)
}

// DispatcherOptions 创建 Dispatcher 的依赖，零值字段使用默认实现；Delay <= 0 时为 DefaultDispatchDelay
type DispatcherOptions struct {
	Delay    time.Duration
	Locker   cache.Locker
	Notifier Notifier
	Contacts ContactLookup
	Now      func() time.Time
}

// Dispatcher 管理所有呼叫入口。每个入口（surface）各自独立地 Idle → Pending → Resolved。
type Dispatcher struct {
	delay    time.Duration
	locker   cache.Locker
	notifier Notifier
	contacts ContactLookup
	now      func() time.Time

	mu       sync.Mutex
	surfaces map[string]*Controller
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		delay:    opts.Delay,
		locker:   opts.Locker,
		notifier: opts.Notifier,
		contacts: opts.Contacts,
		now:      opts.Now,
		surfaces: make(map[string]*Controller),
	}
	if d.delay <= 0 {
		d.delay = DefaultDispatchDelay
	}
	if d.locker == nil {
		d.locker = cache.NewMemoryLocker()
	}
	if d.notifier == nil {
		d.notifier = LogNotifier{}
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Surface 返回指定入口的控制器，首次访问时创建
func (d *Dispatcher) Surface(name string) *Controller {
	name = strings.TrimSpace(name)

	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.surfaces[name]
	if !ok {
		c = &Controller{name: name, d: d}
		d.surfaces[name] = c
	}
	return c
}

// Surfaces 返回已经创建过的全部入口的状态
func (d *Dispatcher) Surfaces() []SurfaceStatus {
	d.mu.Lock()
	controllers := make([]*Controller, 0, len(d.surfaces))
	for _, c := range d.surfaces {
		controllers = append(controllers, c)
	}
	d.mu.Unlock()

	out := make([]SurfaceStatus, 0, len(controllers))
	for _, c := range controllers {
		out = append(out, c.Status())
	}
	return out
}

// TargetRequest 呼叫请求，Service 与 ContactID 二选一
type TargetRequest struct {
	Service   string
	ContactID string
}

// ResolveTarget 把请求解析为呼叫目标
func (d *Dispatcher) ResolveTarget(req TargetRequest) (model.Target, error) {
	switch {
	case req.Service != "" && req.ContactID != "":
		return model.Target{}, pkgerrors.InvalidRequest
	case req.Service != "":
		st, ok := LookupServiceTarget(req.Service)
		if !ok {
			return model.Target{}, pkgerrors.DispatchTargetUnknown
		}
		return st.Target(), nil
	case req.ContactID != "":
		if d.contacts == nil {
			return model.Target{}, pkgerrors.ContactNotFound
		}
		c, ok := d.contacts.Get(req.ContactID)
		if !ok {
			return model.Target{}, pkgerrors.ContactNotFound
		}
		return ContactTarget(c), nil
	default:
		return model.Target{}, pkgerrors.InvalidRequest
	}
}

// Call 解析目标并在指定入口发起呼叫
func (d *Dispatcher) Call(ctx context.Context, surface string, req TargetRequest) (model.Dispatch, error) {
	target, err := d.ResolveTarget(req)
	if err != nil {
		return model.Dispatch{}, err
	}
	return d.Surface(surface).Initiate(ctx, target)
}

// SurfaceStatus 入口快照。Pending 为 nil 表示空闲，LastNotification 为最近一次完成的提示。
type SurfaceStatus struct {
	Surface          string              `json:"surface"`
	State            model.DispatchState `json:"state"`
	Pending          *model.Dispatch     `json:"pending,omitempty"`
	LastNotification *model.Notification `json:"last_notification,omitempty"`
}

// Controller 单个呼叫入口。同一时刻最多一个 pending 呼叫，pending 期间的重复发起被拒绝。
type Controller struct {
	name string
	d    *Dispatcher

	mu      sync.Mutex
	pending *model.Dispatch
	done    chan struct{}
	last    *model.Notification
}

func (c *Controller) lockKey() string {
	return "dispatch:" + c.name
}

// Initiate 发起一次模拟呼叫，延迟结束后异步完成并发出提示
func (c *Controller) Initiate(ctx context.Context, target model.Target) (model.Dispatch, error) {
	ctx, span := tracer.Start(ctx, "dispatch.initiate",
		trace.WithAttributes(
			attribute.String("dispatch.surface", c.name),
			attribute.String("dispatch.target_kind", string(target.Kind)),
			attribute.String("dispatch.target_label", target.Label),
		),
	)
	defer span.End()

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		c.reject(ctx, "local")
		return model.Dispatch{}, pkgerrors.DispatchPending
	}

	acquired, err := c.d.locker.TryLock(ctx, c.lockKey(), c.d.delay+lockGrace)
	if err != nil {
		// 共享锁不可用时仅依赖本进程的 pending 状态
		logger.Logger.Warn("Dispatch lock unavailable, using local guard",
			zap.String("surface", c.name),
			zap.Error(err),
		)
		acquired = true
	}
	if !acquired {
		c.mu.Unlock()
		c.reject(ctx, "shared")
		return model.Dispatch{}, pkgerrors.DispatchPending
	}

	dispatch := model.Dispatch{
		ID:        uuid.NewString(),
		Surface:   c.name,
		State:     model.DispatchStatePending,
		StartedAt: c.d.now(),
		Target:    target,
	}
	done := make(chan struct{})
	c.pending = &dispatch
	c.done = done
	c.mu.Unlock()

	span.SetAttributes(attribute.String("dispatch.id", dispatch.ID))
	metrics.GetMetrics().RecordDispatchStarted(ctx, c.name, string(target.Kind))
	logger.Logger.Info("Dispatch started",
		zap.String("dispatch_id", dispatch.ID),
		zap.String("surface", c.name),
		zap.String("label", target.Label),
	)

	resolveCtx := context.WithoutCancel(ctx)
	time.AfterFunc(c.d.delay, func() {
		c.resolve(resolveCtx, dispatch, done)
	})

	return dispatch, nil
}

func (c *Controller) reject(ctx context.Context, guard string) {
	metrics.GetMetrics().RecordDispatchRejected(ctx, c.name)
	logger.Logger.Info("Dispatch rejected, call already pending",
		zap.String("surface", c.name),
		zap.String("guard", guard),
	)
}

func (c *Controller) resolve(ctx context.Context, dispatch model.Dispatch, done chan struct{}) {
	ctx, span := tracer.Start(ctx, "dispatch.resolve",
		trace.WithAttributes(
			attribute.String("dispatch.id", dispatch.ID),
			attribute.String("dispatch.surface", c.name),
		),
	)
	defer span.End()

	resolvedAt := c.d.now()
	n := model.Notification{
		DispatchID: dispatch.ID,
		Surface:    c.name,
		State:      model.DispatchStateResolved,
		Label:      dispatch.Target.Label,
		Number:     dispatch.Target.Number,
		Message:    model.CallingMessage(dispatch.Target.Label, dispatch.Target.Number),
		ResolvedAt: resolvedAt,
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	if err := c.d.notifier.Notify(notifyCtx, n); err != nil {
		span.RecordError(err)
		metrics.GetMetrics().RecordNotifyFailed(ctx, c.name)
		logger.Logger.Error("Failed to deliver dispatch notification",
			zap.String("dispatch_id", dispatch.ID),
			zap.Error(err),
		)
	}
	cancel()

	if err := c.d.locker.Unlock(ctx, c.lockKey()); err != nil {
		logger.Logger.Warn("Failed to release dispatch lock",
			zap.String("surface", c.name),
			zap.Error(err),
		)
	}

	c.mu.Lock()
	c.pending = nil
	c.last = &n
	close(done)
	c.mu.Unlock()

	metrics.GetMetrics().RecordDispatchResolved(ctx, c.name, string(dispatch.Target.Kind),
		resolvedAt.Sub(dispatch.StartedAt).Seconds())
}

// Pending 当前是否有进行中的呼叫
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending != nil
}

// Status 返回入口快照
func (c *Controller) Status() SurfaceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := SurfaceStatus{
		Surface: c.name,
		State:   model.DispatchStateIdle,
	}
	if c.pending != nil {
		p := *c.pending
		status.State = model.DispatchStatePending
		status.Pending = &p
	}
	if c.last != nil {
		n := *c.last
		status.LastNotification = &n
	}
	return status
}

// Wait 阻塞直到当前 pending 呼叫完成；空闲时立即返回
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil
	}
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAll 等待所有入口的 pending 呼叫完成，用于优雅关闭
func (d *Dispatcher) WaitAll(ctx context.Context) error {
	d.mu.Lock()
	controllers := make([]*Controller, 0, len(d.surfaces))
	for _, c := range d.surfaces {
		controllers = append(controllers, c)
	}
	d.mu.Unlock()

	for _, c := range controllers {
		if err := c.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
