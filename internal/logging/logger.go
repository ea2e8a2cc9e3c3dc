package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CATALOG_ADMIN_LOG_LEVEL"

// LogFileEnvVar overrides the log destination. The terminal UI owns stdout,
// so it always logs to a file.
const LogFileEnvVar = "CATALOG_ADMIN_LOG_FILE"

// Initialize creates a new logger with the specified level writing to stdout.
// If level is empty, it checks CATALOG_ADMIN_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithOutput(level, "")
}

// InitializeWithOutput is Initialize with an explicit output path.
// An empty path means stdout, unless CATALOG_ADMIN_LOG_FILE is set.
func InitializeWithOutput(level string, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if envPath := os.Getenv(LogFileEnvVar); envPath != "" {
		path = envPath
	}

	output := "stdout"
	colour := true
	if path != "" {
		output = path
		colour = false
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if colour {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// ParseLevel maps a level name to a zap level.
// Unknown names fall back to info, since the user asked for some logging.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized so one-shot commands print nothing unexpected
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAPIRequest logs an outgoing request to the catalog API
func LogAPIRequest(method string, url string, requestID string) {
	Debug("API request",
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", requestID),
	)
}

// LogAPIResponse logs the outcome of a catalog API request
func LogAPIResponse(method string, url string, statusCode int, duration time.Duration, requestID string) {
	Debug("API response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	)
}

// LogHTTPRequest logs a request served by the web console
func LogHTTPRequest(remoteAddr string, method string, path string, statusCode int, duration time.Duration, requestID string) {
	Info("HTTP request",
		zap.String("remote_addr", remoteAddr),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	)
}

// LogOperation logs a completed controller operation (load, create, update, delete)
func LogOperation(operation string, err error, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("operation", operation)}, fields...)
	if err != nil {
		Warn("Operation failed", append(fields, zap.Error(err))...)
		return
	}
	Info("Operation completed", fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
