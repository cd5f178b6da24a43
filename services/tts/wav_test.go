package tts

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EncodeWAV(t *testing.T) {
	pcm := make([]byte, 48000) // one second of 24kHz mono 16-bit
	wav := EncodeWAV(pcm, 24000, 1)

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))

	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))       // channels
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))  // sample rate
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))  // byte rate
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))     // bit depth
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Len(t, wav, 44+len(pcm))
}

func Test_ProviderSelection(t *testing.T) {
	_, err := New(ProviderGemini, Credentials{})
	assert.ErrorIs(t, err, ErrNoCredential)

	p, err := New(ProviderGemini, Credentials{GeminiAPIKey: "k"})
	assert.Nil(t, err)
	assert.Equal(t, "wav", p.FileExtension())

	p, err = New(ProviderChatGPT, Credentials{OpenAIAPIKey: "k"})
	assert.Nil(t, err)
	assert.Equal(t, "mp3", p.FileExtension())

	assert.Nil(t, Providers.Parse("nope"))
	assert.NotNil(t, Providers.Parse("chatgpt"))
}
