// Package config holds the coaching run configuration. Everything is an
// explicit value passed to constructors, there is no process-wide state.
package config

import (
	"encoding/json"
	"os"

	"github.com/ansel1/merry/v2"
)

var (
	ErrNoActivity  = merry.Sentinel("no activity configured")
	ErrNoFrequency = merry.Sentinel("feedback_frequency must be positive")
)

const (
	DefaultFPS               = 30.0
	DefaultMaxResponseLength = 10
	DefaultCoach             = "professional coach"
)

// Coaching is the user-facing configuration document.
type Coaching struct {
	Activity          string  `json:"activity"`
	Goal              string  `json:"goal,omitempty"`
	FocusOn           string  `json:"focus_on,omitempty"`
	SkillLevel        string  `json:"skill_level,omitempty"`
	FeedbackFrequency float64 `json:"feedback_frequency"`
	FPS               float64 `json:"fps"`
	MaxResponseLength int     `json:"max_response_length,omitempty"`
	Coach             string  `json:"coach,omitempty"`
	CustomPrompt      string  `json:"custom_prompt,omitempty"`
}

// Load reads the coaching config from a JSON file and applies defaults.
// The activity usually comes from the CLI, so it is validated by the
// caller after any override, not here.
func Load(path string) (*Coaching, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Coaching
	err = json.NewDecoder(f).Decode(&c)
	if err != nil {
		return nil, merry.Prepend(err, path)
	}

	c.ApplyDefaults()
	return &c, nil
}

func (c *Coaching) ApplyDefaults() {
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.MaxResponseLength <= 0 {
		c.MaxResponseLength = DefaultMaxResponseLength
	}
	if c.Coach == "" {
		c.Coach = DefaultCoach
	}
}

func (c *Coaching) Validate() error {
	if c.Activity == "" {
		return merry.Wrap(ErrNoActivity)
	}
	if c.FeedbackFrequency <= 0 {
		return merry.Wrap(ErrNoFrequency)
	}
	return nil
}
