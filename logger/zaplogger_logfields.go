// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestEnd logs the completion of an HTTP request, including the HTTP method, URL, status code, and duration.
func (d *defaultLogger) LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		}
		d.logger.Debug("HTTP request completed", fields...)
	}
}

// LogAuthTokenError logs a failed token acquisition.
// statusCode is 0 when the request never produced a response.
func (d *defaultLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		}
		d.logger.Error("Failed to authenticate", fields...)
	}
}

// LogRetryAttempt logs a retry of a protected call together with the reason that triggered it.
func (d *defaultLogger) LogRetryAttempt(event string, requestID string, attempt int, reason string, err error) {
	if d.logLevel <= LogLevelWarn {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.Int("attempt", attempt),
			zap.String("reason", reason),
			zap.Error(err),
		}
		d.logger.Warn("Executing retry policy", fields...)
	}
}
