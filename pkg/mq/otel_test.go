package mq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestInjectHeadersRoundTrip(t *testing.T) {
	prop := propagation.TraceContext{}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	original := amqp.Table{"x-custom": "v"}
	headers := InjectHeaders(ctx, prop, original)

	require.Len(t, original, 1)
	require.Equal(t, "v", headers["x-custom"])
	require.NotEmpty(t, headers["traceparent"])

	extracted := prop.Extract(context.Background(), &MessageHeaderCarrier{Headers: headers})
	got := trace.SpanContextFromContext(extracted)
	require.Equal(t, traceID, got.TraceID())
	require.Equal(t, spanID, got.SpanID())
}

func TestMessageHeaderCarrierIgnoresNonString(t *testing.T) {
	c := &MessageHeaderCarrier{Headers: amqp.Table{"n": int64(1)}}
	require.Empty(t, c.Get("n"))
	require.Empty(t, c.Get("missing"))

	empty := &MessageHeaderCarrier{}
	empty.Set("k", "v")
	require.Equal(t, "v", empty.Get("k"))
	require.Equal(t, []string{"k"}, empty.Keys())
}
