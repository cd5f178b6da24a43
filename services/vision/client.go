package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"
)

const (
	baseURL = "https://generativelanguage.googleapis.com/v1beta"
	model   = "gemini-2.5-pro"

	// Network calls carried no timeout in earlier revisions. One segment
	// upload plus inference comfortably fits in a minute; anything longer
	// is better spent on a retry.
	requestTimeout = time.Minute
)

var errNoCandidates = merry.Sentinel("no candidates in response")

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text          string         `json:"text,omitempty"`
	InlineData    *blob          `json:"inline_data,omitempty"`
	VideoMetadata *videoMetadata `json:"video_metadata,omitempty"`
}

type blob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type videoMetadata struct {
	FPS         float64 `json:"fps,omitempty"`
	StartOffset string  `json:"start_offset,omitempty"`
	EndOffset   string  `json:"end_offset,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"response_mime_type,omitempty"`
	ResponseSchema   *schema `json:"response_schema,omitempty"`
}

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	rest *resty.Client
}

func NewClient(apiKey string) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{rest: rest}
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	result := &generateResponse{}

	res, err := c.rest.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post(fmt.Sprintf("/models/%s:generateContent", model))
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", merry.New(fmt.Sprintf("generateContent: %s: %s", res.Status(), res.String()))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", merry.Wrap(errNoCandidates)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func videoPart(videoBytes []byte, fps float64) part {
	return part{
		InlineData: &blob{
			MimeType: "video/mp4",
			Data:     base64.StdEncoding.EncodeToString(videoBytes),
		},
		VideoMetadata: &videoMetadata{FPS: fps},
	}
}

func feedbackSchema(maxWords int) *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"feedback": {
				Type:        "STRING",
				Description: fmt.Sprintf("Coaching feedback limited to %d words maximum", maxWords),
			},
		},
		Required: []string{"feedback"},
	}
}
