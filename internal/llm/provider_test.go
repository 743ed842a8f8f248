package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockProvider records calls and replays a scripted sequence of outcomes
type MockProvider struct {
	results []mockOutcome
	calls   int
}

type mockOutcome struct {
	result *GenerationResult
	err    error
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResult, error) {
	outcome := m.results[len(m.results)-1]
	if m.calls < len(m.results) {
		outcome = m.results[m.calls]
	}
	m.calls++
	return outcome.result, outcome.err
}

func (m *MockProvider) Name() string {
	return "mock"
}

func TestGenerationRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request GenerationRequest
		wantErr string
	}{
		{
			name:    "valid prompt only",
			request: GenerationRequest{Prompt: "make a page"},
		},
		{
			name: "valid with image attachment",
			request: GenerationRequest{
				Prompt: "make a page",
				Attachments: []Attachment{
					{Data: []byte{0x89, 0x50}, MimeType: "image/png", Name: "photo.png"},
				},
			},
		},
		{
			name: "valid with audio attachment",
			request: GenerationRequest{
				Prompt: "transcribe this",
				Attachments: []Attachment{
					{Data: []byte{0x01}, MimeType: "audio/wav", Name: "memo.wav"},
				},
			},
		},
		{
			name:    "empty prompt",
			request: GenerationRequest{Prompt: "   "},
			wantErr: "prompt must not be empty",
		},
		{
			name: "attachment without data",
			request: GenerationRequest{
				Prompt: "make a page",
				Attachments: []Attachment{
					{MimeType: "image/png", Name: "photo.png"},
				},
			},
			wantErr: "has no data",
		},
		{
			name: "attachment with unsupported mime type",
			request: GenerationRequest{
				Prompt: "make a page",
				Attachments: []Attachment{
					{Data: []byte{0x01}, MimeType: "application/pdf", Name: "doc.pdf"},
				},
			},
			wantErr: "unsupported mime type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestRecognizedMimeType(t *testing.T) {
	assert.True(t, RecognizedMimeType("image/png"))
	assert.True(t, RecognizedMimeType("image/jpeg"))
	assert.True(t, RecognizedMimeType("audio/mpeg"))
	assert.False(t, RecognizedMimeType("application/pdf"))
	assert.False(t, RecognizedMimeType("text/html"))
	assert.False(t, RecognizedMimeType(""))
}
