package middleware

import (
	"net/http"

	"golang.org/x/sync/semaphore"
)

// WorkerPool limits the number of requests handled at once to size.
// Requests wait for a free slot; a request whose context ends while
// waiting gets 503.
func WorkerPool(size int) Middleware {
	if size < 1 {
		size = 1
	}
	sem := semaphore.NewWeighted(int64(size))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				http.Error(w, "server busy", http.StatusServiceUnavailable)
				return
			}
			defer sem.Release(1)

			next.ServeHTTP(w, r)
		})
	}
}
