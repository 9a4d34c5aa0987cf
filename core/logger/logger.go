package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	std  *slog.Logger
	once sync.Once
)

// Init configures the global logger. Safe to call more than once; only the
// first call wins.
func Init(level string) {
	once.Do(func() {
		std = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		}))
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logger() *slog.Logger {
	if std == nil {
		Init("info")
	}
	return std
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	logger().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, normalize(args)...)
}

// normalize tolerates the `logger.Error("Component:Method", err)` call shape
// by promoting a lone error argument to a keyed attribute.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{slog.Any("error", err)}
		}
	}
	return args
}
