package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/orgpulse/orgpulse/pkg/report"
)

// Recovery converts handler panics into 500 responses. Panics are
// logged and, when a reporter is configured, forwarded to the error
// report endpoint.
func Recovery(logger *zap.Logger, reporter *report.Reporter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)

				if reporter != nil {
					reporter.Async(report.Report{
						Timestamp: time.Now(),
						Message:   fmt.Sprintf("panic: %v", rec),
						Path:      r.URL.Path,
						Method:    r.Method,
					})
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
