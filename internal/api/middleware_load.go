package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"etlmap/internal/errors"
)

// retryAfterSeconds is the Retry-After header value for shed requests
const retryAfterSeconds = 5

// AnalysisLimiter caps the number of analysis requests running at once.
// Analysis runs the whole pipeline synchronously, so unbounded
// concurrency lets one client exhaust the generator and the database.
type AnalysisLimiter struct {
	semaphore chan struct{}
	inFlight  int64
	totalShed uint64
}

// NewAnalysisLimiter creates a limiter allowing max concurrent slots.
func NewAnalysisLimiter(max int) *AnalysisLimiter {
	return &AnalysisLimiter{
		semaphore: make(chan struct{}, max),
	}
}

// TryAcquire takes a slot if one is free. Requests are never queued;
// a full limiter rejects immediately.
func (l *AnalysisLimiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		atomic.AddInt64(&l.inFlight, 1)
		return true
	default:
		atomic.AddUint64(&l.totalShed, 1)
		return false
	}
}

// Release frees a slot after the request completes.
func (l *AnalysisLimiter) Release() {
	select {
	case <-l.semaphore:
		atomic.AddInt64(&l.inFlight, -1)
	default:
		// Should not happen, but don't block
	}
}

// InFlight returns the number of analyses currently running.
func (l *AnalysisLimiter) InFlight() int64 {
	return atomic.LoadInt64(&l.inFlight)
}

// TotalShed returns the number of requests rejected so far.
func (l *AnalysisLimiter) TotalShed() uint64 {
	return atomic.LoadUint64(&l.totalShed)
}

// AnalysisLimitMiddleware rejects analysis requests beyond the
// configured concurrency with 429 and a Retry-After header. Read-only
// routes pass through unguarded.
func AnalysisLimitMiddleware(limiter *AnalysisLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/analyze") {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.TryAcquire() {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				WriteAppError(w, errors.New(errors.RateLimited, "too many concurrent analyses"))
				return
			}
			defer limiter.Release()

			next.ServeHTTP(w, r)
		})
	}
}
