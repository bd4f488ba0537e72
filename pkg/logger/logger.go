package logger

import (
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"SafeCall/config"
)

// Logger 在 Init 之前是 no-op，测试和工具可以直接使用
var (
	Logger   = zap.NewNop()
	logClose io.Closer
)

// Options 日志输出配置，FromConfig 从环境变量构建
type Options struct {
	Service     string
	Environment string
	Level       string
	Format      string // json, text
	OutputPath  string // stdout 或文件路径
}

func FromConfig(cfg config.Config) Options {
	return Options{
		Service:     cfg.ServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LoggerLevel,
		Format:      cfg.LoggerFormat,
		OutputPath:  cfg.LoggerOutputPath,
	}
}

// Init 按 config.Cfg 创建日志并接管 hertz 的 hlog
func Init() {
	opts := FromConfig(config.Cfg)

	ws, closer, openErr := buildWriteSyncer(opts.OutputPath)
	hzLogger := New(opts, ws)

	hlog.SetLogger(hzLogger)
	hlog.SetLevel(toHlogLevel(parseZapLevel(opts.Level)))

	Logger = hzLogger.Logger().With(
		zap.String("service", opts.Service),
		zap.String("environment", opts.Environment),
	)
	logClose = closer

	if openErr != nil {
		Logger.Warn("Log file unavailable, writing to stdout",
			zap.String("path", opts.OutputPath),
			zap.Error(openErr),
		)
	}
	Logger.Info("Logger initialized",
		zap.String("level", strings.ToUpper(opts.Level)),
		zap.String("format", opts.Format),
	)
}

// New 创建 hertz-contrib zap 日志，写入 ws
func New(opts Options, ws zapcore.WriteSyncer) *hertzzap.Logger {
	level := zap.NewAtomicLevelAt(parseZapLevel(opts.Level))

	return hertzzap.NewLogger(
		hertzzap.WithCoreEnc(buildEncoder(opts)),
		hertzzap.WithCoreWs(ws),
		hertzzap.WithCoreLevel(level),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		),
	)
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}

	if logClose != nil {
		_ = logClose.Close()
	}
}

// 开发环境默认彩色文本，其余环境按 Format 选择
func buildEncoder(opts Options) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if opts.Environment == "development" || strings.EqualFold(opts.Format, "text") {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// buildWriteSyncer 文件打不开时退回 stdout 并返回错误，由调用方记录
func buildWriteSyncer(path string) (zapcore.WriteSyncer, io.Closer, error) {
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout), nil, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zapcore.AddSync(os.Stdout), nil, err
	}
	return zapcore.AddSync(file), file, nil
}

func parseZapLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

func toHlogLevel(level zapcore.Level) hlog.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return hlog.LevelDebug
	case level == zapcore.InfoLevel:
		return hlog.LevelInfo
	case level == zapcore.WarnLevel:
		return hlog.LevelWarn
	case level == zapcore.ErrorLevel:
		return hlog.LevelError
	default:
		return hlog.LevelFatal
	}
}
