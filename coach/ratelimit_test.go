package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_RateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	r := NewRateLimiter(10 * time.Second)
	r.now = func() time.Time { return now }

	ok, wait := r.Allow("session-a")
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), wait)

	r.Record("session-a")

	ok, wait = r.Allow("session-a")
	assert.False(t, ok)
	assert.Equal(t, 10*time.Second, wait)

	// other sessions are independent
	ok, _ = r.Allow("session-b")
	assert.True(t, ok)

	now = now.Add(4 * time.Second)
	ok, wait = r.Allow("session-a")
	assert.False(t, ok)
	assert.Equal(t, 6*time.Second, wait)

	now = now.Add(6 * time.Second)
	ok, _ = r.Allow("session-a")
	assert.True(t, ok)

	r.Record("session-a")
	r.Forget("session-a")
	ok, _ = r.Allow("session-a")
	assert.True(t, ok)
}

func Test_MinCallInterval_ClampedToFeedbackFrequency(t *testing.T) {
	// short live intervals must not be halved by the limiter
	assert.Equal(t, 5*time.Second, minCallInterval(5))
	assert.Equal(t, 10*time.Second, minCallInterval(10))
	assert.Equal(t, 10*time.Second, minCallInterval(15))
	assert.Equal(t, 10*time.Second, minCallInterval(0))
}

func Test_OutputPath(t *testing.T) {
	assert.Equal(t, "data/coached_yoga_morning_flow.mp4", OutputPath("data", "yoga", "/videos/morning_flow.mp4"))
	assert.Equal(t, "data/coached_guitar_take2.mp4", OutputPath("data", "guitar", "take2.mov"))
}
