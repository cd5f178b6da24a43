package environment

import (
	"os"
)

// GetWorkDir returns the directory for transient segment and clip files.
// Read at call time so values loaded from .env are picked up.
func GetWorkDir() string {
	workDir := os.Getenv("COACH_WORK_DIR")
	if workDir != "" {
		return workDir
	}
	return "data"
}

func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetOpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
