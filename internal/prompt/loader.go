package prompt

import (
	"strings"

	"github.com/pagecanvas/canvas-api/pkg/embedded"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the system instruction describing the output contract
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.SystemPromptTxt)), nil
}

// GetRefinementInstructions loads the extra instruction block for refining an
// existing creation
func (l *Loader) GetRefinementInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.RefinementInstructionsTxt)), nil
}
