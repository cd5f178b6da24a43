package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Plan(t *testing.T) {
	segments := Plan(60, 15)
	assert.Len(t, segments, 4)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 15.0, segments[0].Duration)
	assert.Equal(t, 45.0, segments[3].Start)
	assert.Equal(t, 15.0, segments[3].Duration)
}

// A 40s source at interval 15 yields two segments: 0-15 and 15-40, the
// 10s remainder folded into the last one rather than dropped or emitted
// as a short trailing segment.
func Test_Plan_RemainderExtendsLast(t *testing.T) {
	segments := Plan(40, 15)
	assert.Len(t, segments, 2)

	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 15.0, segments[0].Duration)
	assert.Equal(t, 15.0, segments[0].End())

	assert.Equal(t, 15.0, segments[1].Start)
	assert.Equal(t, 25.0, segments[1].Duration)
	assert.Equal(t, 40.0, segments[1].End())
}

func Test_Plan_CountMatchesFloor(t *testing.T) {
	for _, tc := range []struct {
		duration float64
		interval float64
		count    int
	}{
		{100, 10, 10},
		{99.9, 10, 9},
		{30, 15, 2},
		{29, 15, 1},
		{15, 15, 1},
	} {
		segments := Plan(tc.duration, tc.interval)
		assert.Len(t, segments, tc.count, "duration=%v interval=%v", tc.duration, tc.interval)
		if tc.count > 0 {
			assert.InDelta(t, tc.duration, segments[len(segments)-1].End(), 0.0001)
		}
	}
}

func Test_Plan_TooShort(t *testing.T) {
	assert.Nil(t, Plan(10, 15))
	assert.Nil(t, Plan(0, 15))
	assert.Nil(t, Plan(10, 0))
}
