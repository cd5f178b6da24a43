// Package tts synthesizes feedback text to speech through one of two
// remote providers selected by configuration.
package tts

import (
	"context"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
)

type ProviderName enum.Member[string]

var (
	ProviderGemini  = ProviderName{Value: "gemini"}
	ProviderChatGPT = ProviderName{Value: "chatgpt"}
	Providers       = enum.New(ProviderGemini, ProviderChatGPT)

	ErrUnknownProvider = merry.Sentinel("unknown tts provider")
	ErrNoCredential    = merry.Sentinel("missing API credential for tts provider")
)

const requestTimeout = time.Minute

// Provider converts text into playable audio bytes.
type Provider interface {
	// Synthesize returns encoded audio for the given text.
	Synthesize(ctx context.Context, text string) ([]byte, error)
	// FileExtension is the container the provider emits ("wav", "mp3").
	FileExtension() string
}

type Credentials struct {
	GeminiAPIKey string
	OpenAIAPIKey string
}

// New returns the provider for the given name, failing fast when its
// credential is absent so that runs die before any processing starts.
func New(name ProviderName, creds Credentials) (Provider, error) {
	switch name {
	case ProviderGemini:
		if creds.GeminiAPIKey == "" {
			return nil, merry.Wrap(ErrNoCredential, merry.AppendMessage("GEMINI_API_KEY"))
		}
		return newGeminiProvider(creds.GeminiAPIKey), nil
	case ProviderChatGPT:
		if creds.OpenAIAPIKey == "" {
			return nil, merry.Wrap(ErrNoCredential, merry.AppendMessage("OPENAI_API_KEY"))
		}
		return newOpenAIProvider(creds.OpenAIAPIKey), nil
	}
	return nil, merry.Wrap(ErrUnknownProvider, merry.AppendMessage(name.Value))
}
