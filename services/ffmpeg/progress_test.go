package ffmpeg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const probeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1280,
      "height": 720,
      "r_frame_rate": "30/1",
      "duration": "40.000000",
      "nb_frames": "1200"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "sample_rate": "48000",
      "channels": 2,
      "duration": "40.000000"
    }
  ],
  "format": {
    "filename": "input.mp4",
    "nb_streams": 2,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "40.000000"
  }
}`

func Test_ProbeResultToInfo(t *testing.T) {
	var result FFProbeResult
	err := json.Unmarshal([]byte(probeJSON), &result)
	assert.Nil(t, err)

	info := ProbeResultToInfo(&result)

	assert.True(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.Equal(t, 30, info.FrameRate)
	assert.Equal(t, 1200, info.TotalFrames)
	assert.Equal(t, 40.0, info.TotalSeconds)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.Len(t, info.AudioStreams, 1)
	assert.Len(t, info.VideoStreams, 1)
}

func Test_ProbeResultToInfo_AudioOnly(t *testing.T) {
	var result FFProbeResult
	err := json.Unmarshal([]byte(`{
      "streams": [{"index": 0, "codec_name": "pcm_s16le", "codec_type": "audio", "duration": "2.500000"}],
      "format": {"duration": "2.500000"}
    }`), &result)
	assert.Nil(t, err)

	info := ProbeResultToInfo(&result)
	assert.False(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.Equal(t, 2.5, info.TotalSeconds)
}

func Test_ParseProgress(t *testing.T) {
	var last Progress
	parse := parseProgressCallback([]string{"-i", "input.mp4"}, StreamInfo{
		TotalFrames:  1200,
		TotalSeconds: 40,
	}, func(p Progress) {
		last = p
	})

	parse("frame=600")
	parse("bitrate=128.0kbits/s")
	parse("speed=2.1x")
	parse("progress=continue")

	assert.Equal(t, 600, last.CurrentFrame)
	assert.Equal(t, 50.0, last.Percent)
	assert.Equal(t, "128.0kbits/s", last.Bitrate)

	parse("progress=end")
	assert.Equal(t, 100.0, last.Percent)
}
