package http

import (
	"log"
	"net/http"
	"time"
)

// RequestLogger wraps a handler and logs one line per request with the
// final status code and latency.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Printf("request method=%s path=%s status=%d bytes=%d duration=%s",
			r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start))
	})
}

// statusRecorder captures the status code and body size written by the
// wrapped handler. The status defaults to 200 because handlers that only
// call Write never invoke WriteHeader.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}
