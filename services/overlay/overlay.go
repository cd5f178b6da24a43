// Package overlay implements the upload-mode delivery pipeline: feedback
// clips are collected with a target timestamp while segments are analyzed,
// then mixed onto the source video's audio track in a single ffmpeg pass.
package overlay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ansel1/merry/v2"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/services/ffmpeg"
	"github.com/nedcoach/coach-flows/services/segment"
	"github.com/nedcoach/coach-flows/services/tts"
)

var ErrFinalized = merry.Sentinel("overlay already muxed, create a new collector")

// TimedClip is one synthesized feedback clip scheduled on the output
// timeline.
type TimedClip struct {
	Path     string
	StartsAt float64
	Duration float64
}

// AdjustedStart places a clip so its audio ends at the end of the segment
// that produced it, instead of starting at the segment boundary. This
// keeps clip N out of the window where clip N+1 is expected. Clips longer
// than their segment are clamped to the segment start.
func AdjustedStart(segStart, segDuration, audioDuration float64) float64 {
	start := segStart + segDuration - audioDuration
	if start < segStart {
		return segStart
	}
	return start
}

// Collector accumulates feedback clips for one video-processing run.
type Collector struct {
	provider  tts.Provider
	workDir   string
	clips     []TimedClip
	finalized bool
}

func NewCollector(provider tts.Provider, workDir string) *Collector {
	return &Collector{
		provider: provider,
		workDir:  workDir,
	}
}

// Add synthesizes the feedback text, measures the real clip length, and
// records it with its adjusted start.
func (c *Collector) Add(ctx context.Context, text string, seg segment.Segment) error {
	if c.finalized {
		return merry.Wrap(ErrFinalized)
	}

	audio, err := c.provider.Synthesize(ctx, text)
	if err != nil {
		return merry.Prepend(err, "synthesizing feedback clip")
	}

	err = os.MkdirAll(c.workDir, os.ModePerm)
	if err != nil {
		return err
	}

	path := filepath.Join(c.workDir, fmt.Sprintf("feedback_%.1fs.%s", seg.Start, c.provider.FileExtension()))
	err = os.WriteFile(path, audio, 0644)
	if err != nil {
		return err
	}

	audioDuration, err := ffmpeg.GetDuration(path)
	if err != nil {
		_ = os.Remove(path)
		return merry.Prepend(err, "measuring feedback clip")
	}

	c.clips = append(c.clips, TimedClip{
		Path:     path,
		StartsAt: AdjustedStart(seg.Start, seg.Duration, audioDuration),
		Duration: audioDuration,
	})
	return nil
}

func (c *Collector) Clips() []TimedClip {
	return c.clips
}

// Mux writes the final video: the original video stream untouched, the
// audio replaced by the additive mix of the original track and every
// collected clip. With no clips the input is copied through byte for
// byte. The collector cannot be reused afterwards.
func (c *Collector) Mux(inputPath, outputPath string, cb ffmpeg.ProgressCallback) error {
	if c.finalized {
		return merry.Wrap(ErrFinalized)
	}
	c.finalized = true

	if len(c.clips) == 0 {
		log.Info().Msg("no feedback clips, copying source video")
		return copyFile(inputPath, outputPath)
	}

	err := ffmpeg.CheckInstalled()
	if err != nil {
		return err
	}

	info, err := ffmpeg.GetStreamInfo(inputPath)
	if err != nil {
		return err
	}

	params := generateOverlayParams(overlayInput{
		VideoPath:     inputPath,
		VideoHasAudio: info.HasAudio,
		VideoSeconds:  info.TotalSeconds,
		Clips:         c.clips,
	}, outputPath)

	_, err = ffmpeg.Do(params, info, cb)
	if err != nil {
		// the original file is untouched; leave clips behind for inspection
		return merry.Prepend(err, "overlay mux")
	}

	for _, clip := range c.clips {
		err = os.Remove(clip.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", clip.Path).Msg("removing feedback clip")
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
