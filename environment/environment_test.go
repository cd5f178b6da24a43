package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetWorkDir_ReadsEnvAtCallTime(t *testing.T) {
	t.Setenv("COACH_WORK_DIR", "")
	assert.Equal(t, "data", GetWorkDir())

	// set after the package is initialized, as a dotenv load would
	t.Setenv("COACH_WORK_DIR", "/custom/work")
	assert.Equal(t, "/custom/work", GetWorkDir())
}
