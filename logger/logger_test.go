// logger_test.go
package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level LogLevel) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core), level), logs
}

// TestParseLogLevelFromString tests the conversion from string to LogLevel
func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		levelStr      string
		expectedLevel LogLevel
	}{
		{"LogLevelDebug", LogLevelDebug},
		{"LogLevelInfo", LogLevelInfo},
		{"LogLevelWarn", LogLevelWarn},
		{"LogLevelError", LogLevelError},
		{"LogLevelDPanic", LogLevelDPanic},
		{"LogLevelPanic", LogLevelPanic},
		{"LogLevelFatal", LogLevelFatal},
		{"Invalid", LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.levelStr, func(t *testing.T) {
			assert.Equal(t, tt.expectedLevel, ParseLogLevelFromString(tt.levelStr))
		})
	}
}

// TestDefaultLogger_SetLevel tests the SetLevel method of defaultLogger
func TestDefaultLogger_SetLevel(t *testing.T) {
	dLogger := &defaultLogger{logger: zap.NewNop()}

	dLogger.SetLevel(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, dLogger.GetLogLevel())
}

// TestDefaultLogger_With checks that contextual fields are carried on every entry of the derived logger.
func TestDefaultLogger_With(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	child := log.With(zap.String("component", "test"))
	child.Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test", logs.All()[0].ContextMap()["component"])
	assert.Equal(t, LogLevelInfo, child.GetLogLevel())
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(LogLevelWarn)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	_ = log.Error("error message")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn message", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "error message", entries[1].Message)
}

// TestDefaultLogger_Error verifies the returned error carries the log message even when the entry is filtered.
func TestDefaultLogger_Error(t *testing.T) {
	log, logs := newObservedLogger(LogLevelNone)

	err := log.Error("something failed", zap.Int("code", 7))

	require.Error(t, err)
	assert.Equal(t, "something failed", err.Error())
	assert.Equal(t, 0, logs.Len())
}

func TestDefaultLogger_LogAuthTokenError(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	log.LogAuthTokenError("authentication_failed", "POST", "http://localhost/login", 401, errors.New("bad credentials"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "Failed to authenticate", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "authentication_failed", fields["event"])
	assert.Equal(t, int64(401), fields["status_code"])
	assert.Equal(t, "bad credentials", fields["error"])
}

func TestDefaultLogger_LogRetryAttempt(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	log.LogRetryAttempt("retry_attempt", "req-1", 2, "unauthorized", errors.New("401"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(2), fields["attempt"])
	assert.Equal(t, "unauthorized", fields["reason"])
}

// TestDefaultLogger_LogRequestEnd ensures request completion events are only emitted at debug level.
func TestDefaultLogger_LogRequestEnd(t *testing.T) {
	infoLog, infoLogs := newObservedLogger(LogLevelInfo)
	infoLog.LogRequestEnd("request_end", "GET", "http://localhost/contador", 200, time.Millisecond)
	assert.Equal(t, 0, infoLogs.Len())

	debugLog, debugLogs := newObservedLogger(LogLevelDebug)
	debugLog.LogRequestEnd("request_end", "GET", "http://localhost/contador", 200, time.Millisecond)
	require.Equal(t, 1, debugLogs.Len())
	assert.Equal(t, "GET", debugLogs.All()[0].ContextMap()["method"])
}

func TestConvertToZapLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected zapcore.Level
	}{
		{LogLevelDebug, zap.DebugLevel},
		{LogLevelInfo, zap.InfoLevel},
		{LogLevelWarn, zap.WarnLevel},
		{LogLevelError, zap.ErrorLevel},
		{LogLevelDPanic, zap.DPanicLevel},
		{LogLevelPanic, zap.PanicLevel},
		{LogLevelFatal, zap.FatalLevel},
		{LogLevelNone, zap.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, convertToZapLevel(tt.level))
	}
}

func TestBuildLogger(t *testing.T) {
	for _, encoding := range []string{LogOutputJSON, LogOutputConsole} {
		t.Run(encoding, func(t *testing.T) {
			log := BuildLogger(LogLevelWarn, encoding, "\t")
			require.NotNil(t, log)
			assert.Equal(t, LogLevelWarn, log.GetLogLevel())
		})
	}
}

func TestFormatJSONPayload(t *testing.T) {
	payload := struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}{"counter", 3}

	assert.Equal(t, "{\n  \"name\": \"counter\",\n  \"value\": 3\n}", FormatJSONPayload(payload))

	// channels cannot be marshalled
	ch := make(chan int)
	assert.NotEmpty(t, FormatJSONPayload(ch))
}
