package service

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"SafeCall/internal/model"
	pkgerrors "SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
)

// Probe 平台定位能力。拒绝授权时返回 errors.LocationDenied。
type Probe interface {
	Request(ctx context.Context) (model.Coordinate, error)
}

type ProbeFunc func(ctx context.Context) (model.Coordinate, error)

func (f ProbeFunc) Request(ctx context.Context) (model.Coordinate, error) {
	return f(ctx)
}

// StaticProbe 总是返回固定坐标
type StaticProbe struct {
	Coordinate model.Coordinate
}

func (p StaticProbe) Request(ctx context.Context) (model.Coordinate, error) {
	return p.Coordinate, nil
}

// DeniedProbe 模拟用户拒绝授权
type DeniedProbe struct{}

func (DeniedProbe) Request(ctx context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, pkgerrors.LocationDenied
}

// LocationTracker 会话内只请求一次定位，结果不会再变化
type LocationTracker struct {
	probe Probe
	once  sync.Once
	done  chan struct{}

	mu     sync.RWMutex
	status model.LocationStatus
}

func NewLocationTracker(probe Probe) *LocationTracker {
	if probe == nil {
		probe = DeniedProbe{}
	}
	return &LocationTracker{
		probe:  probe,
		done:   make(chan struct{}),
		status: model.LocationStatus{State: model.LocationStateUnknown},
	}
}

// Start 异步发起定位请求，重复调用无效。请求没有超时，未返回前状态保持 unknown。
func (t *LocationTracker) Start(ctx context.Context) {
	t.once.Do(func() {
		ctx := context.WithoutCancel(ctx)
		go func() {
			defer close(t.done)
			t.settle(t.probe.Request(ctx))
		}()
	})
}

func (t *LocationTracker) settle(coord model.Coordinate, err error) {
	if err == nil && !finite(coord) {
		err = pkgerrors.LocationDenied
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.status = model.LocationStatus{
			State:   model.LocationStateDenied,
			Display: model.LocationDeniedText,
		}
		logger.Logger.Info("Location unavailable", zap.Error(err))
		return
	}

	c := coord
	t.status = model.LocationStatus{
		Coordinate: &c,
		State:      model.LocationStateResolved,
		Display:    coord.Display(),
	}
	logger.Logger.Info("Location resolved", zap.String("display", t.status.Display))
}

func finite(c model.Coordinate) bool {
	for _, v := range []float64{c.Latitude, c.Longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Status 返回定位快照
func (t *LocationTracker) Status() model.LocationStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.status
	if s.Coordinate != nil {
		c := *s.Coordinate
		s.Coordinate = &c
	}
	return s
}

// Wait 阻塞直到定位结果返回；必须先调用 Start
func (t *LocationTracker) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
