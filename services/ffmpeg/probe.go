package ffmpeg

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nedcoach/coach-flows/cache"
	"github.com/nedcoach/coach-flows/utils"
)

type FFProbeStream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RFrameRate    string `json:"r_frame_rate"`
	AvgFrameRate  string `json:"avg_frame_rate"`
	TimeBase      string `json:"time_base"`
	StartTime     string `json:"start_time"`
	Duration      string `json:"duration"`
	BitRate       string `json:"bit_rate"`
	NbFrames      string `json:"nb_frames"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
	Tags          struct {
		Language string `json:"language"`
		Duration string `json:"DURATION"`
	} `json:"tags"`
}

type FFProbeResult struct {
	Streams []FFProbeStream `json:"streams"`
	Format  struct {
		Filename   string `json:"filename"`
		NbStreams  int    `json:"nb_streams"`
		FormatName string `json:"format_name"`
		StartTime  string `json:"start_time"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
}

func doProbe(path string) (*FFProbeResult, error) {
	cmd := exec.Command(
		"ffprobe",
		"-hide_banner",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	result, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't execute ffprobe %s, %s", path, err.Error())
	}

	var info FFProbeResult
	err = json.Unmarshal([]byte(result), &info)

	return &info, err
}

// ProbeFile returns information about the specified media file. Requires ffprobe present.
func ProbeFile(filePath string) (*FFProbeResult, error) {
	return cache.GetOrSet("probe:"+filePath, func() (*FFProbeResult, error) {
		return doProbe(filePath)
	})
}

func GetStreamInfo(path string) (StreamInfo, error) {
	info, err := ProbeFile(path)
	if err != nil {
		return StreamInfo{}, err
	}
	return ProbeResultToInfo(info), nil
}

// GetDuration returns the container duration of the file in seconds.
// Both the segment pre-split arithmetic and the feedback clip timing
// depend on this value, so format.duration is preferred over per-stream
// durations (which lie for some webm captures).
func GetDuration(path string) (float64, error) {
	info, err := ProbeFile(path)
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(info.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("no parsable duration for %s: %s", path, err.Error())
	}
	return seconds, nil
}
