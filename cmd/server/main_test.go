package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SafeCall/config"
	"SafeCall/internal/model"
	"SafeCall/internal/service"
)

func TestSetupTracingDisabled(t *testing.T) {
	cfg := config.Cfg
	cfg.TracingEnabled = false

	opts, mw, shutdown := setupTracing(context.Background(), cfg)
	require.Empty(t, opts)
	require.Nil(t, mw)
	require.NotNil(t, shutdown)
	shutdown()
}

type countingNotifier struct {
	mu sync.Mutex
	n  int
}

func (c *countingNotifier) Notify(context.Context, model.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return nil
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestWaitPendingDeliversBeforeReturning(t *testing.T) {
	rec := &countingNotifier{}
	d := service.NewDispatcher(service.DispatcherOptions{Delay: 50 * time.Millisecond, Notifier: rec})

	_, err := d.Call(context.Background(), "home", service.TargetRequest{Service: service.TargetEmergency})
	require.NoError(t, err)

	require.NoError(t, waitPending(d, time.Second))
	require.Equal(t, 1, rec.count())
}

func TestWaitPendingTimesOut(t *testing.T) {
	d := service.NewDispatcher(service.DispatcherOptions{Delay: time.Second, Notifier: &countingNotifier{}})

	_, err := d.Call(context.Background(), "home", service.TargetRequest{Service: service.TargetEmergency})
	require.NoError(t, err)

	require.ErrorIs(t, waitPending(d, 10*time.Millisecond), context.DeadlineExceeded)
}

func TestDispatchDrainTimeoutCoversDelay(t *testing.T) {
	cfg := config.Config{DispatchDelayMs: 500}
	require.Equal(t, 5500*time.Millisecond, dispatchDrainTimeout(cfg))
}
