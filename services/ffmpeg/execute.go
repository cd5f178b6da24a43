package ffmpeg

import (
	"os/exec"

	"github.com/ansel1/merry/v2"

	"github.com/nedcoach/coach-flows/utils"
)

var ErrToolMissing = merry.Sentinel("ffmpeg not found in PATH")

// CheckInstalled verifies that ffmpeg is available. Muxing cannot degrade
// gracefully without it, so callers treat this as a hard stop.
func CheckInstalled() error {
	_, err := exec.LookPath("ffmpeg")
	if err != nil {
		return merry.Wrap(ErrToolMissing)
	}
	return nil
}

func Do(arguments []string, info StreamInfo, progressCallback ProgressCallback) (string, error) {
	cmd := exec.Command("ffmpeg", arguments...)

	return utils.ExecuteCmd(cmd, parseProgressCallback(arguments, info, progressCallback))
}
