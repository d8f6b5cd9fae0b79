package prompts

import (
	_ "embed"
	"strings"
)

//go:embed steps.md
var stepsBase string

// StepsSystem returns the fixed system instruction for step plans.
func StepsSystem() string {
	return strings.TrimSpace(stepsBase)
}
