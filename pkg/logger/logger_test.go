package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseZapLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseZapLevel("debug"))
	require.Equal(t, zapcore.WarnLevel, parseZapLevel("WARN"))
	require.Equal(t, zapcore.ErrorLevel, parseZapLevel("error"))
	require.Equal(t, zapcore.InfoLevel, parseZapLevel("verbose"))
}

func TestToHlogLevel(t *testing.T) {
	require.Equal(t, hlog.LevelDebug, toHlogLevel(zapcore.DebugLevel))
	require.Equal(t, hlog.LevelError, toHlogLevel(zapcore.ErrorLevel))
	require.Equal(t, hlog.LevelFatal, toHlogLevel(zapcore.PanicLevel))
}

func TestLoggerUsableBeforeInit(t *testing.T) {
	require.NotNil(t, Logger)
	Logger.Info("no-op logger accepts writes")
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Environment: "production", Level: "warn", Format: "json"}, zapcore.AddSync(&buf)).Logger()

	l.Info("dropped")
	l.Warn("Dispatch lock unavailable", zap.String("surface", "home"))
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "home", entry["surface"])
}

func TestBuildWriteSyncerFallsBackToStdout(t *testing.T) {
	ws, closer, err := buildWriteSyncer(filepath.Join(t.TempDir(), "missing", "app.log"))
	require.Error(t, err)
	require.Nil(t, closer)
	require.NotNil(t, ws)

	path := filepath.Join(t.TempDir(), "app.log")
	ws, closer, err = buildWriteSyncer(path)
	require.NoError(t, err)
	require.NotNil(t, ws)
	require.NoError(t, closer.Close())
}
