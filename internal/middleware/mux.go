package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"

	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const slowRequest = 30 * time.Second

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rr, r)

		duration := time.Since(start)

		// * generation endpoints are slow, flag them so they stand out in the log
		if duration > slowRequest {
			logger.Warn("%s %s %d %dB %s (slow)", r.Method, r.RequestURI, rr.statusCode, rr.size, duration)
			return
		}
		logger.Info("%s %s %d %dB %s", r.Method, r.RequestURI, rr.statusCode, rr.size, duration)
	})
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.size += n
	return n, err
}

// * CORS wraps the whole router so preflight requests never reach route matching
func CORS(origins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("recovered from panic: %s", fmt.Sprint(v...))
}

// * Recovery turns a handler panic into a 500 and logs it
func Recovery(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(next)
}
