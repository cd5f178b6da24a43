package tts

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"
)

const (
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel    = "gemini-2.0-flash-exp"
	geminiVoice    = "Kore"
	geminiPCMRate  = 24000
	geminiChannels = 1
)

var errNoAudio = merry.Sentinel("no audio in response")

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"response_modalities"`
		SpeechConfig       struct {
			VoiceConfig struct {
				PrebuiltVoiceConfig struct {
					VoiceName string `json:"voice_name"`
				} `json:"prebuilt_voice_config"`
			} `json:"voice_config"`
		} `json:"speech_config"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// geminiProvider synthesizes through the Gemini speech modality. The model
// returns raw 24 kHz mono PCM which is framed into a WAV container here.
type geminiProvider struct {
	rest *resty.Client
}

func newGeminiProvider(apiKey string) *geminiProvider {
	rest := resty.New().
		SetBaseURL(geminiBaseURL).
		SetTimeout(requestTimeout).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json")

	return &geminiProvider{rest: rest}
}

func (g *geminiProvider) FileExtension() string {
	return "wav"
}

func (g *geminiProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := geminiRequest{}
	req.Contents = []geminiContent{{Parts: []struct {
		Text string `json:"text"`
	}{{Text: text}}}}
	req.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = geminiVoice

	result := &geminiResponse{}

	res, err := g.rest.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post(fmt.Sprintf("/models/%s:generateContent", geminiModel))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, merry.New(fmt.Sprintf("gemini tts: %s: %s", res.Status(), res.String()))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].InlineData == nil {
		return nil, merry.Wrap(errNoAudio)
	}

	pcm, err := base64.StdEncoding.DecodeString(result.Candidates[0].Content.Parts[0].InlineData.Data)
	if err != nil {
		return nil, merry.Prepend(err, "decoding audio payload")
	}

	return EncodeWAV(pcm, geminiPCMRate, geminiChannels), nil
}
