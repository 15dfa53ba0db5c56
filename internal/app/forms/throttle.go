package forms

import (
	"time"

	"golang.org/x/time/rate"
)

// MinSubmitInterval is the minimum delay between two form submissions.
const MinSubmitInterval = time.Second

// SubmitThrottle rejects form submissions that arrive less than a fixed
// interval after the previous accepted one. It is the client-side guard
// against double submits; overlapping in-flight operations are prevented here,
// not inside the session store.
type SubmitThrottle struct {
	limiter *rate.Limiter
}

// NewSubmitThrottle creates a throttle allowing one submission per interval.
func NewSubmitThrottle(interval time.Duration) *SubmitThrottle {
	return &SubmitThrottle{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Allow reports whether a submission may proceed now. A rejected submission
// consumes nothing; the caller simply drops it.
func (t *SubmitThrottle) Allow() bool {
	return t.limiter.Allow()
}
