package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nedcoach/coach-flows/config"
)

func Test_RenderPrompt(t *testing.T) {
	c := &config.Coaching{
		Activity:   "basketball",
		Coach:      "Michael Jordan",
		FPS:        30,
		Goal:       "improve my jump shot",
		SkillLevel: "beginner",
	}

	prompt := RenderPrompt(c)

	assert.Contains(t, prompt, "real-time basketball coach")
	assert.Contains(t, prompt, "Michael Jordan")
	assert.Contains(t, prompt, "FPS is 30")
	assert.Contains(t, prompt, "- My goal: improve my jump shot")
	assert.Contains(t, prompt, "- My level: beginner")
	assert.NotContains(t, prompt, "Focus on my basic form")
}

func Test_RenderPrompt_Defaults(t *testing.T) {
	c := &config.Coaching{Activity: "yoga"}
	c.ApplyDefaults()

	prompt := RenderPrompt(c)

	assert.Contains(t, prompt, "professional coach")
	assert.Contains(t, prompt, "- Focus on my basic form")
}

func Test_RenderPrompt_CustomOverrides(t *testing.T) {
	c := &config.Coaching{Activity: "guitar", CustomPrompt: "Count my strumming mistakes."}

	assert.Equal(t, "Count my strumming mistakes.", RenderPrompt(c))
}
