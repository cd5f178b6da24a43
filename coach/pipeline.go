// Package coach wires the segment producer, the feedback generator, and
// the audio delivery pipeline into one run: capture a segment, analyze,
// speak or schedule, repeat until the source ends or the run is stopped.
package coach

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/config"
	"github.com/nedcoach/coach-flows/services/ffmpeg"
	"github.com/nedcoach/coach-flows/services/overlay"
	"github.com/nedcoach/coach-flows/services/playback"
	"github.com/nedcoach/coach-flows/services/segment"
	"github.com/nedcoach/coach-flows/services/tts"
	"github.com/nedcoach/coach-flows/services/vision"
)

type Pipeline struct {
	Coaching  *config.Coaching
	Analyzer  *vision.Analyzer
	TTS       tts.Provider
	WorkDir   string
	Device    segment.CaptureDevice
	SessionID string

	limiter *RateLimiter
}

func NewPipeline(coaching *config.Coaching, analyzer *vision.Analyzer, provider tts.Provider, workDir string) *Pipeline {
	return &Pipeline{
		Coaching:  coaching,
		Analyzer:  analyzer,
		TTS:       provider,
		WorkDir:   workDir,
		Device:    segment.DefaultCaptureDevice(),
		SessionID: uuid.NewString(),
		limiter:   NewRateLimiter(minCallInterval(coaching.FeedbackFrequency)),
	}
}

// minCallInterval spaces inference calls, but never wider than the
// feedback frequency itself, so short live intervals are not halved by
// the limiter.
func minCallInterval(feedbackFrequency float64) time.Duration {
	frequency := time.Duration(feedbackFrequency * float64(time.Second))
	if frequency > 0 && frequency < DefaultMinCallInterval {
		return frequency
	}
	return DefaultMinCallInterval
}

// RunLive captures one interval at a time from the camera and plays
// feedback as soon as it is generated. Returns nil on context
// cancellation, which is the normal way a live run ends.
func (p *Pipeline) RunLive(ctx context.Context) error {
	manager := playback.NewManager(p.TTS, nil)
	defer manager.Stop()
	defer p.limiter.Forget(p.SessionID)

	interval := p.Coaching.FeedbackFrequency

	for {
		if ctx.Err() != nil {
			return nil
		}

		seg, err := segment.CaptureLive(ctx, p.Device, interval, p.WorkDir)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if seg == nil {
			log.Warn().Msg("no frames captured this cycle")
			continue
		}

		if ok, wait := p.limiter.Allow(p.SessionID); !ok {
			// back-to-back short intervals get spaced out; the segment
			// itself is stale by then, so drop it
			log.Info().Dur("wait", wait).Msg("inference rate limited, skipping segment")
			_ = os.Remove(seg.Path)
			continue
		}
		p.limiter.Record(p.SessionID)

		feedback := p.Analyzer.Analyze(ctx, seg.Path)
		log.Info().Str("feedback", feedback).Msg("analysis result")

		_ = os.Remove(seg.Path)

		if !vision.IsErrorFeedback(feedback) {
			manager.Enqueue(feedback)
		}
	}
}

// RunUpload pre-splits the source file, analyzes every segment, and muxes
// all feedback clips into the output video. Returns the output path.
func (p *Pipeline) RunUpload(ctx context.Context, sourcePath string) (string, error) {
	segments, err := segment.Split(sourcePath, p.Coaching.FeedbackFrequency, p.WorkDir)
	if err != nil {
		return "", err
	}

	collector := overlay.NewCollector(p.TTS, p.WorkDir)

	for i, seg := range segments {
		if ctx.Err() != nil {
			break
		}

		log.Info().
			Int("segment", i+1).
			Int("total", len(segments)).
			Float64("start", seg.Start).
			Float64("end", seg.End()).
			Msg("analyzing segment")

		feedback := p.Analyzer.Analyze(ctx, seg.Path)
		log.Info().Str("feedback", feedback).Msg("analysis result")

		if !vision.IsErrorFeedback(feedback) {
			err = collector.Add(ctx, feedback, seg)
			if err != nil {
				log.Error().Err(err).Msg("recording feedback clip")
			}
		}

		err = os.Remove(seg.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", seg.Path).Msg("removing segment")
		}
	}

	outputPath := OutputPath(p.WorkDir, p.Coaching.Activity, sourcePath)
	log.Info().Str("output", outputPath).Msg("creating final video with audio overlay")

	err = collector.Mux(sourcePath, outputPath, func(progress ffmpeg.Progress) {
		log.Debug().Float64("percent", progress.Percent).Msg("muxing")
	})
	if err != nil {
		return "", err
	}

	return outputPath, nil
}

// OutputPath derives the deterministic output location for a coached
// video: coached_<activity>_<stem>.mp4 under the work dir.
func OutputPath(workDir, activity, sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(workDir, fmt.Sprintf("coached_%s_%s.mp4", activity, stem))
}
