package redis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"SafeCall/config"
)

func TestKey(t *testing.T) {
	prev := config.Cfg.RedisPrefix
	t.Cleanup(func() { config.Cfg.RedisPrefix = prev })

	config.Cfg.RedisPrefix = "sc"
	require.Equal(t, "sc:lock:dispatch:home", Key("lock", "dispatch", "home"))
	require.Equal(t, "sc:lock", Key("lock", ""))

	config.Cfg.RedisPrefix = ""
	require.Equal(t, "safecall:x", Key("x"))
}

func TestDisabledWithoutAddr(t *testing.T) {
	if config.Cfg.RedisEnabled() {
		t.Skip("REDIS_ADDR is set")
	}
	require.NoError(t, Init())
	require.False(t, Enabled())
	require.Panics(t, func() { Client() })
}
