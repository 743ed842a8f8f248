package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiBuildContents(t *testing.T) {
	provider := &GeminiProvider{}

	request := &GenerationRequest{
		Prompt: "build a gallery",
		Attachments: []Attachment{
			{Data: []byte{0x89, 0x50, 0x4e, 0x47}, MimeType: "image/png", Name: "a.png"},
			{Data: []byte{0x52, 0x49, 0x46, 0x46}, MimeType: "audio/wav", Name: "b.wav"},
		},
	}

	contents := provider.buildContents(request)

	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)

	parts := contents[0].Parts
	require.Len(t, parts, 3)

	// Prompt text leads, attachments follow in caller order.
	assert.Equal(t, "build a gallery", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, parts[1].InlineData.Data)
	require.NotNil(t, parts[2].InlineData)
	assert.Equal(t, "audio/wav", parts[2].InlineData.MIMEType)
}

func TestGeminiBuildContentsWithoutAttachments(t *testing.T) {
	provider := &GeminiProvider{}

	contents := provider.buildContents(&GenerationRequest{Prompt: "just text"})

	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "just text", contents[0].Parts[0].Text)
}

func TestGeminiProviderName(t *testing.T) {
	provider := &GeminiProvider{}
	assert.Equal(t, "gemini", provider.Name())
}
