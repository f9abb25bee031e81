package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			elapsed := time.Since(start)

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("HTTP %s %s - status=%d, duration=%s, bytes=%d, request_id=%s",
					r.Method, r.URL.Path, rec.status, elapsed, rec.bytes, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("HTTP %s %s - status=%d, duration=%s, bytes=%d, request_id=%s",
					r.Method, r.URL.Path, rec.status, elapsed, rec.bytes, requestID)
			default:
				logger.Info("HTTP %s %s - status=%d, duration=%s, bytes=%d, request_id=%s",
					r.Method, r.URL.Path, rec.status, elapsed, rec.bytes, requestID)
			}
		})
	}
}
