// Package logger provides a global, Sugared Zap logger with optional
// OpenTelemetry integration. Logs are JSON encoded and written to stdout unless
// other output paths are configured, which the terminal dashboard relies on to
// keep its screen free of log lines.
package logger

import (
	"context"
	"sync"

	"github.com/gabapcia/transferscope/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const instrumentationName = "github.com/gabapcia/transferscope"

var (
	// logger is the global SugaredLogger instance. It starts as a no-op so
	// packages can log before Init runs (e.g. in tests).
	logger = zap.NewNop().Sugar()

	// mu guards logger and initialized.
	mu          sync.Mutex
	initialized bool
)

// config holds configuration options for the logger.
type config struct {
	level       string   // the minimum log level (debug, info, warn, error, panic, fatal)
	outputPaths []string // zap sink URLs or file paths
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level for the global logger.
// Example levels: "debug", "info", "warn", "error", "panic", "fatal".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutputPaths replaces stdout with the given sinks. Paths follow zap.Open
// semantics: plain file paths, "stdout", "stderr" or registered sink URLs.
func WithOutputPaths(paths ...string) Option {
	return func(c *config) {
		if len(paths) > 0 {
			c.outputPaths = paths
		}
	}
}

// Init configures the global logger. By default it logs JSON to stdout at the
// "info" level. When telemetry.LoggerProvider() is set, an OTEL bridge core is
// added so every record is also exported. Calling Init again after a successful
// initialization has no effect.
//
// Returns an error if the level cannot be parsed or an output path cannot be opened.
func Init(opts ...Option) error {
	cfg := config{level: "info", outputPaths: []string{"stdout"}}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}

	sink, _, err := zap.Open(cfg.outputPaths...)
	if err != nil {
		return err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			sink,
			level,
		),
	}

	if lp := telemetry.LoggerProvider(); lp != nil {
		cores = append(cores, otelzap.NewCore(instrumentationName, otelzap.WithLoggerProvider(lp)))
	}

	logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	initialized = true

	return nil
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Sync flushes any buffered log entries. It should be called on shutdown.
func Sync() error {
	return current().Sync()
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	current().Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	current().Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	current().Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	current().Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	current().Fatalw(msg, keysAndValues...)
}
