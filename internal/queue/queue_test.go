package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SafeCall/internal/cache"
	"SafeCall/internal/model"
	"SafeCall/storage/mq"
)

func sampleNotification() model.Notification {
	return model.Notification{
		DispatchID: "d-1",
		Surface:    "home",
		State:      model.DispatchStateResolved,
		Label:      "Police",
		Number:     "911",
		Message:    model.CallingMessage("Police", "911"),
		ResolvedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPublisherNotify(t *testing.T) {
	var (
		gotExchange, gotKey, gotID string
		gotBody                    interface{}
	)
	p := NewPublisher("safecall.dispatch").WithPublishFunc(
		func(ctx context.Context, exchange, routingKey, messageID string, body interface{}) error {
			gotExchange, gotKey, gotID, gotBody = exchange, routingKey, messageID, body
			return nil
		})

	require.NoError(t, p.Notify(context.Background(), sampleNotification()))
	require.Equal(t, "safecall.dispatch", gotExchange)
	require.Equal(t, mq.DispatchResolvedRoutingKey, gotKey)
	require.Equal(t, "dispatch_resolved_d-1", gotID)

	msg, ok := gotBody.(DispatchResolvedMessage)
	require.True(t, ok)
	require.Equal(t, sampleNotification(), msg.Notification())
}

func TestPublisherNotifyError(t *testing.T) {
	p := NewPublisher("x").WithPublishFunc(
		func(ctx context.Context, exchange, routingKey, messageID string, body interface{}) error {
			return errors.New("channel closed")
		})
	require.Error(t, p.Notify(context.Background(), sampleNotification()))
}

func encode(t *testing.T, msg DispatchResolvedMessage) []byte {
	t.Helper()
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	return b
}

func TestMessageHandlerDeduplicates(t *testing.T) {
	var calls int
	h := newMessageHandler(cache.NewMemoryLocker(), func(ctx context.Context, msg DispatchResolvedMessage) error {
		calls++
		return nil
	})

	body := encode(t, newDispatchResolvedMessage(sampleNotification()))
	require.NoError(t, h(context.Background(), body))

	err := h(context.Background(), body)
	var skip *mq.SkipError
	require.ErrorAs(t, err, &skip)
	require.Equal(t, 1, calls)
}

func TestMessageHandlerRetryAfterFailure(t *testing.T) {
	fail := true
	h := newMessageHandler(cache.NewMemoryLocker(), func(ctx context.Context, msg DispatchResolvedMessage) error {
		if fail {
			return errors.New("downstream unavailable")
		}
		return nil
	})

	body := encode(t, newDispatchResolvedMessage(sampleNotification()))
	require.Error(t, h(context.Background(), body))

	fail = false
	require.NoError(t, h(context.Background(), body))
}

func TestMessageHandlerMalformed(t *testing.T) {
	h := newMessageHandler(cache.NewMemoryLocker(), LogDispatchResolved)

	var skip *mq.SkipError
	require.ErrorAs(t, h(context.Background(), []byte("{")), &skip)
}
