package tts

import (
	"context"
	"fmt"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIModel        = "gpt-4o-mini-tts"
	openAIVoice        = "coral"
	openAIInstructions = "Speak in a cheerful and positive tone."
)

type speechRequest struct {
	Model        string `json:"model"`
	Voice        string `json:"voice"`
	Input        string `json:"input"`
	Instructions string `json:"instructions,omitempty"`
}

// openAIProvider synthesizes through the OpenAI speech endpoint, which
// returns a ready-to-play mp3 body.
type openAIProvider struct {
	rest *resty.Client
}

func newOpenAIProvider(apiKey string) *openAIProvider {
	rest := resty.New().
		SetBaseURL(openAIBaseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &openAIProvider{rest: rest}
}

func (o *openAIProvider) FileExtension() string {
	return "mp3"
}

func (o *openAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	res, err := o.rest.R().
		SetContext(ctx).
		SetBody(speechRequest{
			Model:        openAIModel,
			Voice:        openAIVoice,
			Input:        text,
			Instructions: openAIInstructions,
		}).
		Post("/audio/speech")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, merry.New(fmt.Sprintf("openai tts: %s: %s", res.Status(), res.String()))
	}

	return res.Body(), nil
}
