package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider defines the interface for remote generation backends.
// A provider performs exactly one model call per Generate invocation;
// retry policy lives in CallWithRetry, not in the provider.
type Provider interface {
	// Generate produces a complete HTML document for the given request
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResult, error)

	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string
}

// Attachment is one inline binary part of a generation request.
// Data arrives base64-encoded on the wire; encoding/json decodes it into raw
// bytes before it reaches a provider, so this package never encodes itself.
type Attachment struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mime_type"`
	Name     string `json:"name"`
}

// GenerationRequest contains all parameters for a single model call
type GenerationRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Attachments       []Attachment
	Temperature       float32
}

// GenerationResult contains the raw model output plus token accounting
type GenerationResult struct {
	HTML         string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Validate checks the request invariants: a non-empty prompt and, for each
// attachment, non-empty data with a recognized MIME type.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.New("prompt must not be empty")
	}
	for i, att := range r.Attachments {
		if len(att.Data) == 0 {
			return fmt.Errorf("attachment %d (%q) has no data", i, att.Name)
		}
		if !RecognizedMimeType(att.MimeType) {
			return fmt.Errorf("attachment %d (%q) has unsupported mime type %q", i, att.Name, att.MimeType)
		}
	}
	return nil
}

// RecognizedMimeType reports whether this service accepts the attachment type.
// Only image and audio payloads are forwarded to the model inline.
func RecognizedMimeType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "audio/")
}
