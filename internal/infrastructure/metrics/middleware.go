package metrics

import (
	"net/http"
	"time"
)

// Middleware returns an HTTP middleware that records metrics for each request
// under the given route name. exporter may be nil.
func Middleware(collector *Collector, exporter *PrometheusExporter) func(route string, next http.Handler) http.Handler {
	return func(route string, next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Record request
			collector.RecordRequest(route)
			if exporter != nil {
				exporter.RecordRequest(route, r.Method)
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Record duration
			duration := time.Since(start).Seconds()
			collector.RecordDuration(route, duration)
			if exporter != nil {
				exporter.RecordDuration(route, duration)
			}

			// Record error if any
			if rec.status >= http.StatusBadRequest {
				collector.RecordError(route)
				if exporter != nil {
					exporter.RecordError(route, rec.status)
				}
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
