package overlay

import (
	"fmt"
	"strings"
)

type overlayInput struct {
	VideoPath     string
	VideoHasAudio bool
	VideoSeconds  float64
	Clips         []TimedClip
}

// generateOverlayParams builds the single ffmpeg invocation mixing every
// clip onto the source: input 0 is the video, inputs 1..N the clips, each
// delayed into place with adelay and summed with amix. Sources without an
// audio track get a silent anullsrc base as the final input so the mix
// always has an original-track lane.
func generateOverlayParams(input overlayInput, outputPath string) []string {
	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", input.VideoPath,
	}

	for _, clip := range input.Clips {
		params = append(params, "-i", clip.Path)
	}

	baseLabel := "[0:a]"
	if !input.VideoHasAudio {
		params = append(params,
			"-f", "lavfi",
			"-t", fmt.Sprintf("%f", input.VideoSeconds),
			"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
		)
		baseLabel = fmt.Sprintf("[%d:a]", len(input.Clips)+1)
	}

	var filterParts []string
	for i, clip := range input.Clips {
		delayMs := int(clip.StartsAt * 1000)
		filterParts = append(filterParts,
			fmt.Sprintf("[%d:a]adelay=%d|%d[a%d]", i+1, delayMs, delayMs, i))
	}

	mixInputs := baseLabel
	for i := range input.Clips {
		mixInputs += fmt.Sprintf("[a%d]", i)
	}
	filterParts = append(filterParts,
		fmt.Sprintf("%samix=inputs=%d:duration=longest[out]", mixInputs, len(input.Clips)+1))

	params = append(params,
		"-filter_complex", strings.Join(filterParts, ";"),
		"-map", "0:v",
		"-map", "[out]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y",
		outputPath,
	)

	return params
}
