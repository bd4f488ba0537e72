package mq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	mqotel "SafeCall/pkg/mq"
)

type fakeAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAck) Ack(uint64, bool) error {
	f.acked++
	return nil
}

func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAck) Reject(_ uint64, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func delivery(ack *fakeAck, redelivered bool) mqotel.Delivery {
	return mqotel.Delivery{
		Delivery: amqp.Delivery{
			Acknowledger: ack,
			DeliveryTag:  1,
			MessageId:    "dispatch_resolved_1",
			Redelivered:  redelivered,
			Body:         []byte(`{}`),
		},
		Context: context.Background(),
	}
}

func handlerReturning(err error) ConsumeOptions {
	return ConsumeOptions{
		Queue: "test",
		Handler: func(context.Context, []byte) error {
			return err
		},
	}
}

func TestHandleDeliveryAcksOnSuccess(t *testing.T) {
	ack := &fakeAck{}
	handleDelivery(handlerReturning(nil), delivery(ack, false))

	require.Equal(t, 1, ack.acked)
	require.Zero(t, ack.nacked)
}

func TestHandleDeliveryAcksSkipped(t *testing.T) {
	ack := &fakeAck{}
	skip := fmt.Errorf("wrapped: %w", &SkipError{Reason: "duplicate"})
	handleDelivery(handlerReturning(skip), delivery(ack, false))

	require.Equal(t, 1, ack.acked)
	require.Zero(t, ack.nacked)
}

func TestHandleDeliveryRequeuesOnce(t *testing.T) {
	ack := &fakeAck{}
	handleDelivery(handlerReturning(errors.New("boom")), delivery(ack, false))
	require.Equal(t, 1, ack.nacked)
	require.True(t, ack.requeue)

	ack = &fakeAck{}
	handleDelivery(handlerReturning(errors.New("boom")), delivery(ack, true))
	require.Equal(t, 1, ack.nacked)
	require.False(t, ack.requeue)
}

func TestSkipErrorMessage(t *testing.T) {
	err := &SkipError{Reason: "malformed"}
	require.Equal(t, "skip message: malformed", err.Error())
}

func TestDisabledWithoutConnection(t *testing.T) {
	require.False(t, Enabled())

	err := PublishMessage(context.Background(), "ex", DispatchResolvedRoutingKey, "id", map[string]string{"a": "b"})
	require.Error(t, err)

	err = Consume(context.Background(), handlerReturning(nil))
	require.Error(t, err)

	require.NoError(t, Close(context.Background()))
}
