package segment

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ansel1/merry/v2"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/services/ffmpeg"
)

var ErrSourceTooShort = merry.Sentinel("source shorter than one interval")

// Plan returns the segment boundaries for a source of the given duration,
// without touching any files. floor(duration/interval) segments are
// produced and the remainder extends the last one, so no segment is ever
// shorter than the interval.
func Plan(duration, interval float64) []Segment {
	if interval <= 0 || duration < interval {
		return nil
	}

	count := int(math.Floor(duration / interval))
	remainder := duration - float64(count)*interval

	segments := make([]Segment, count)
	for i := range segments {
		segments[i] = Segment{
			Start:    float64(i) * interval,
			Duration: interval,
		}
	}
	segments[count-1].Duration += remainder

	return segments
}

// Split cuts the source file into the planned segments with a stream copy,
// writing segment_NNN.mp4 files under workDir.
func Split(sourcePath string, interval float64, workDir string) ([]Segment, error) {
	duration, err := ffmpeg.GetDuration(sourcePath)
	if err != nil {
		return nil, err
	}

	segments := Plan(duration, interval)
	if len(segments) == 0 {
		return nil, merry.Wrap(ErrSourceTooShort,
			merry.AppendMessagef("%s is %.1fs, interval %.1fs", sourcePath, duration, interval))
	}

	err = os.MkdirAll(workDir, os.ModePerm)
	if err != nil {
		return nil, err
	}

	log.Info().
		Float64("duration", duration).
		Int("segments", len(segments)).
		Msg("splitting source")

	for i, seg := range segments {
		outputPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i))

		params := []string{
			"-hide_banner",
			"-i", sourcePath,
			"-ss", fmt.Sprintf("%f", seg.Start),
			"-t", fmt.Sprintf("%f", seg.Duration),
			"-c", "copy",
			"-y",
			outputPath,
		}

		_, err = ffmpeg.Do(params, ffmpeg.StreamInfo{TotalSeconds: seg.Duration}, nil)
		if err != nil {
			return nil, merry.Prepend(err, fmt.Sprintf("segment %d", i))
		}

		segments[i].Path = outputPath
	}

	return segments, nil
}
