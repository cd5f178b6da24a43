package coach

import (
	"sync"
	"time"
)

// DefaultMinCallInterval is the minimum spacing between inference calls
// for one session.
const DefaultMinCallInterval = 10 * time.Second

// RateLimiter throttles inference calls per session id. Sessions are
// independent; only the timestamp map is shared.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastCall    map[string]time.Time
	now         func() time.Time
}

func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		minInterval: minInterval,
		lastCall:    map[string]time.Time{},
		now:         time.Now,
	}
}

// Allow reports whether the session may call now, and if not, how long it
// has to wait.
func (r *RateLimiter) Allow(sessionID string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.lastCall[sessionID]
	if !ok {
		return true, 0
	}
	elapsed := r.now().Sub(last)
	if elapsed >= r.minInterval {
		return true, 0
	}
	return false, r.minInterval - elapsed
}

// Record marks the session as having just made a call.
func (r *RateLimiter) Record(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCall[sessionID] = r.now()
}

// Forget drops the session from the map.
func (r *RateLimiter) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lastCall, sessionID)
}
