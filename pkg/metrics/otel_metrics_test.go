package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestDispatchMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordDispatchStarted(ctx, "home", "service")
	m.RecordDispatchRejected(ctx, "home")
	m.RecordDispatchResolved(ctx, "home", "service", 0.5)

	got := collect(t, reader)

	initiated := got["dispatch_initiated_total"].Data.(metricdata.Sum[int64])
	require.Len(t, initiated.DataPoints, 1)
	require.EqualValues(t, 1, initiated.DataPoints[0].Value)

	pending := got["dispatch_pending"].Data.(metricdata.Sum[int64])
	require.Len(t, pending.DataPoints, 1)
	require.EqualValues(t, 0, pending.DataPoints[0].Value)

	rejected := got["dispatch_rejected_total"].Data.(metricdata.Sum[int64])
	require.EqualValues(t, 1, rejected.DataPoints[0].Value)
}

func TestGetMetricsWithoutProvider(t *testing.T) {
	m := GetMetrics()
	require.NotNil(t, m)
	m.RecordContactAdded(context.Background())
}
