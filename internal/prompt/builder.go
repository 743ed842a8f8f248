package prompt

import (
	"fmt"
	"strings"

	"github.com/pagecanvas/canvas-api/internal/llm"
)

const (
	uploadsPrefix = "/assets/uploads/"

	// terminalInstruction closes every prompt so a truncated or trailing-off
	// request still ends with an unambiguous "produce output now".
	terminalInstruction = "Generate the complete HTML document now."
)

// Builder assembles user prompts for the page generation model.
// All methods are pure string transformations.
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// VirtualPath returns the stable synthetic path the model uses to reference an
// inlined attachment. Characters outside [A-Za-z0-9.] in the display name are
// replaced with underscores.
func VirtualPath(name string) string {
	if name == "" {
		name = "attachment"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return uploadsPrefix + b.String()
}

// BuildUserPrompt produces the user-side prompt for a fresh generation. With
// attachments present it emits the mapping instruction pairing each attachment
// with its virtual path, in caller order; without them it echoes the request
// text. Either way the prompt ends with the terminal instruction.
func (b *Builder) BuildUserPrompt(promptText string, attachments []llm.Attachment) string {
	var sb strings.Builder

	sb.WriteString("Create a web creation based on this request:\n\n")
	sb.WriteString(strings.TrimSpace(promptText))

	if len(attachments) > 0 {
		sb.WriteString("\n\nThe user attached the following files, provided inline with this message. ")
		sb.WriteString("Wherever the creation needs one of them, reference it by the path listed below ")
		sb.WriteString("and substitute the attached data for that path in the final document:\n")
		for i, att := range attachments {
			name := att.Name
			if name == "" {
				name = fmt.Sprintf("attachment %d", i+1)
			}
			fmt.Fprintf(&sb, "%d. %s (%s) -> %s\n", i+1, name, att.MimeType, VirtualPath(att.Name))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(terminalInstruction)
	return sb.String()
}

// BuildRefinementPrompt produces the user-side prompt for changing an existing
// creation. The current document travels with the instruction so the model
// returns a full replacement rather than a diff.
func (b *Builder) BuildRefinementPrompt(currentHTML, instruction string) string {
	var sb strings.Builder

	sb.WriteString("Here is the current HTML document of an existing web creation:\n\n")
	sb.WriteString(currentHTML)
	sb.WriteString("\n\nApply this change to it:\n\n")
	sb.WriteString(strings.TrimSpace(instruction))
	sb.WriteString("\n\nKeep everything else intact. ")
	sb.WriteString(terminalInstruction)
	return sb.String()
}
