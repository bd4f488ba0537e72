package otel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 1.0, cfg.SampleRatio)

	cfg = Config{Environment: "production"}.withDefaults()
	require.Equal(t, 0.1, cfg.SampleRatio)

	cfg = Config{Environment: "production", SampleRatio: 5}.withDefaults()
	require.Equal(t, 1.0, cfg.SampleRatio)
}

func TestGRPCEndpoint(t *testing.T) {
	require.Equal(t, "collector:4317", grpcEndpoint("http://collector:4317"))
	require.Equal(t, "collector:4317", grpcEndpoint("https://collector:4317"))
	require.Equal(t, "localhost:4317", grpcEndpoint("localhost:4317"))
}

func TestServiceAttributes(t *testing.T) {
	attrs := ServiceAttributes("safecall", "v1", "staging")

	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	require.Equal(t, "safecall", got["service.name"])
	require.Equal(t, "safecall", got["service.namespace"])
	require.Equal(t, "staging", got["deployment.environment"])
}
