package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-Id"

// NewStructuredLogger logs every request with its outcome. Each request gets an id,
// taken from the incoming header when present, and a child logger stored in the
// request context for handlers to use through zerolog.Ctx.
func NewStructuredLogger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			reqLogger := logger.With().Str("request_id", requestID).Logger()
			w.Header().Set(RequestIDHeader, requestID)

			tww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			tStart := time.Now()
			defer func() {
				status := tww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				event := reqLogger.Info()
				msg := "request completed"
				if status >= 500 {
					event = reqLogger.Error()
					msg = "server error"
				}
				event.
					Dict("request", zerolog.Dict().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr)).
					Dict("response", zerolog.Dict().
						Int("status", status).
						Int("bytes", tww.BytesWritten()).
						Dur("latency", time.Since(tStart))).
					Msg(msg)
			}()

			next.ServeHTTP(tww, r.WithContext(reqLogger.WithContext(r.Context())))
		}
		return http.HandlerFunc(fn)
	}
}
