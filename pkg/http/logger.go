package http

import (
	"go.uber.org/zap"

	"weather-etl/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport failure (httpStatus 0) or an error HTTP status
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapLogger writes HTTP events through pkg/log. Request lines go to debug level.
type ZapLogger struct {
	// MaxBodyLength truncates logged response bodies, zero means 512 bytes.
	MaxBodyLength int
}

var _ HTTPLogger = (*ZapLogger)(nil)

func (l *ZapLogger) LogRequest(method, url string, _ map[string]string, _ string) {
	log.Debug("http request",
		zap.String("method", method),
		zap.String("url", url))
}

func (l *ZapLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64) {
	log.Debug("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l *ZapLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.String("response_body", l.truncate(responseBody)),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func (l *ZapLogger) truncate(body string) string {
	limit := l.MaxBodyLength
	if limit <= 0 {
		limit = 512
	}
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
