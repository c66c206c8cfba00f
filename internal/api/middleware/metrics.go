package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/metrics"
)

// statusWriter wraps http.ResponseWriter to capture status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Flush forwards flushes to the wrapped writer so streaming responses keep
// working behind the metrics wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Metrics returns middleware that records Prometheus metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(wrapped.status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path,
		).Observe(duration)
	})
}

// knownPaths keeps metric label cardinality bounded: anything outside the
// routed surface is collapsed into one label.
var knownPaths = map[string]bool{
	"/":                      true,
	"/health":                true,
	"/metrics":               true,
	"/api/contact":           true,
	"/api/chat":              true,
	"/api/realtime-token":    true,
	"/api/admin/submissions": true,
}

func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "/other"
}
