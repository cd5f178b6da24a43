package vision

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/config"
)

// ErrorFeedback is delivered through the same path as real feedback when
// every attempt, including the degraded one, has failed.
const ErrorFeedback = "Error in analysis"

const degradedPrompt = "provide general coaching feedback for this activity"

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = time.Second
)

type generator interface {
	generate(ctx context.Context, req generateRequest) (string, error)
}

// Analyzer turns one video segment into a short feedback string. Transient
// inference failures are retried, then degraded, and never surface as an
// error: the caller always gets a feedback string.
type Analyzer struct {
	client   generator
	coaching *config.Coaching
	prompt   string

	maxAttempts    int
	initialBackoff time.Duration
}

func NewAnalyzer(client *Client, coaching *config.Coaching) *Analyzer {
	return &Analyzer{
		client:         client,
		coaching:       coaching,
		prompt:         RenderPrompt(coaching),
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
}

// Analyze sends the segment file plus the rendered prompt to the model
// and returns the feedback text.
func (a *Analyzer) Analyze(ctx context.Context, videoPath string) string {
	videoBytes, err := os.ReadFile(videoPath)
	if err != nil {
		log.Error().Err(err).Str("path", videoPath).Msg("reading segment")
		return ErrorFeedback
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{
			videoPart(videoBytes, a.coaching.FPS),
			{Text: a.prompt},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   feedbackSchema(a.coaching.MaxResponseLength),
		},
	}

	text, err := a.generateWithRetry(ctx, req)
	if err == nil {
		return parseFeedback(text)
	}
	log.Warn().Err(err).Msg("analysis attempts exhausted, trying degraded request")

	// Degraded: drop the video and ask for generic coaching feedback.
	text, err = a.client.generate(ctx, generateRequest{
		Contents: []content{{Parts: []part{
			{Text: degradedPrompt + " (" + a.coaching.Activity + ")"},
		}}},
	})
	if err != nil {
		log.Error().Err(err).Msg("degraded request failed")
		return ErrorFeedback
	}
	return parseFeedback(text)
}

func (a *Analyzer) generateWithRetry(ctx context.Context, req generateRequest) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = a.initialBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	return backoff.RetryWithData(func() (string, error) {
		return a.client.generate(ctx, req)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(a.maxAttempts-1)), ctx))
}

// parseFeedback extracts the feedback field from a JSON response body,
// falling back to the raw text when it isn't the expected JSON.
func parseFeedback(raw string) string {
	var body struct {
		Feedback string `json:"feedback"`
	}
	err := json.Unmarshal([]byte(raw), &body)
	if err != nil || body.Feedback == "" {
		return strings.TrimSpace(raw)
	}
	return body.Feedback
}

// IsErrorFeedback reports whether the text is a degraded error string
// rather than real coaching feedback. Live mode keeps these off the TTS
// path.
func IsErrorFeedback(text string) bool {
	return strings.HasPrefix(text, "Error in") || strings.Contains(strings.ToLower(text), "error")
}
