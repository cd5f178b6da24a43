package vision

import (
	"fmt"
	"strings"

	"github.com/nedcoach/coach-flows/config"
)

// RenderPrompt builds the coaching prompt for one run. A custom_prompt in
// the config replaces the rendered template entirely.
func RenderPrompt(c *config.Coaching) string {
	if c.CustomPrompt != "" {
		return c.CustomPrompt
	}

	var analysisParts []string

	if c.Goal != "" {
		analysisParts = append(analysisParts, fmt.Sprintf("- My goal: %s", c.Goal))
	}
	if c.FocusOn != "" {
		analysisParts = append(analysisParts, fmt.Sprintf("- Focus on: %s", c.FocusOn))
	}
	if c.SkillLevel != "" {
		analysisParts = append(analysisParts, fmt.Sprintf("- My level: %s", c.SkillLevel))
	}

	analysisSection := "- Focus on my basic form"
	if len(analysisParts) > 0 {
		analysisSection = strings.Join(analysisParts, "\n")
	}

	return fmt.Sprintf(`You are a real-time %s coach. Help me like you're %s. FPS is %g.
FEEDBACK:
%s
- ALWAYS be direct
- NO timestamps
`, c.Activity, c.Coach, c.FPS, analysisSection)
}
