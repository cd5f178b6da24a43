package segment

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/nedcoach/coach-flows/utils"
)

// CaptureDevice describes a camera input for ffmpeg.
type CaptureDevice struct {
	// Format is the ffmpeg input format, e.g. "v4l2" or "avfoundation".
	Format string
	// Device is the input identifier, e.g. "/dev/video0" or "0".
	Device string
}

// DefaultCaptureDevice returns the webcam input for the current platform.
func DefaultCaptureDevice() CaptureDevice {
	switch runtime.GOOS {
	case "darwin":
		return CaptureDevice{Format: "avfoundation", Device: "0"}
	case "windows":
		return CaptureDevice{Format: "dshow", Device: "video=Integrated Camera"}
	default:
		return CaptureDevice{Format: "v4l2", Device: "/dev/video0"}
	}
}

// CaptureLive records one interval from the device into a temp mp4 and
// returns the segment. Start stays zero: live segments are analyzed and
// discarded immediately, so only Duration matters.
// An empty recording is not an error, it returns nil so the caller can
// skip the cycle.
func CaptureLive(ctx context.Context, device CaptureDevice, interval float64, workDir string) (*Segment, error) {
	err := os.MkdirAll(workDir, os.ModePerm)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(workDir, fmt.Sprintf("live_%s.mp4", uuid.NewString()))

	params := []string{
		"-hide_banner",
		"-f", device.Format,
		"-i", device.Device,
		"-t", fmt.Sprintf("%f", interval),
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", params...)
	_, err = utils.ExecuteCmd(cmd, nil)
	if err != nil {
		_ = os.Remove(outputPath)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	stat, err := os.Stat(outputPath)
	if err != nil || stat.Size() == 0 {
		// no frames came off the device this cycle
		_ = os.Remove(outputPath)
		return nil, nil
	}

	return &Segment{
		Path:     outputPath,
		Duration: interval,
	}, nil
}
