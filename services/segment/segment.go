// Package segment slices a video source into fixed-length pieces, one per
// feedback cycle. File sources are pre-split up front, live sources are
// recorded one interval at a time.
package segment

// Segment is one bounded time slice of the source, backed by a file that
// the consumer deletes after analysis.
type Segment struct {
	Path     string
	Start    float64
	Duration float64
}

func (s Segment) End() float64 {
	return s.Start + s.Duration
}
