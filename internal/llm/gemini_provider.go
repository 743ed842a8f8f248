package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate performs a single generation call against the Gemini API
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResult, error) {
	startTime := time.Now()
	log.Printf("🎨 GEMINI GENERATION REQUEST STARTED (Model: %s, attachments: %d)", request.Model, len(request.Attachments))

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := p.buildContents(request)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemInstruction}},
		},
		Temperature: genai.Ptr(request.Temperature),
	}

	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, remoteErrorFromGemini(err)
	}

	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	response, err := p.processResponse(result, startTime)
	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, err
	}

	transaction.SetTag("success", "true")
	return response, nil
}

// buildContents converts the request into Gemini Content format: one user
// message holding the prompt text followed by the inline attachment parts,
// in the order the caller supplied them.
func (p *GeminiProvider) buildContents(request *GenerationRequest) []*genai.Content {
	parts := []*genai.Part{{Text: request.Prompt}}

	for _, att := range request.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: att.MimeType,
				Data:     att.Data,
			},
		})
	}

	return []*genai.Content{{Role: geminiUserRole, Parts: parts}}
}

// remoteErrorFromGemini maps the SDK error onto the tagged RemoteError form
func remoteErrorFromGemini(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{
			StatusCode: apiErr.Code,
			Status:     apiErr.Status,
			Message:    apiErr.Message,
		}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}

// processResponse converts the Gemini response to a GenerationResult
func (p *GeminiProvider) processResponse(result *genai.GenerateContentResponse, startTime time.Time) (*GenerationResult, error) {
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in Gemini response")
	}

	var textOutput string
	for _, part := range candidate.Content.Parts {
		textOutput += part.Text
	}

	if textOutput == "" {
		return nil, fmt.Errorf("gemini response did not include any output text")
	}

	generation := &GenerationResult{HTML: textOutput}

	if result.UsageMetadata != nil {
		generation.InputTokens = int(result.UsageMetadata.PromptTokenCount)
		generation.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
		generation.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			generation.InputTokens, generation.OutputTokens, generation.TotalTokens)
	}

	log.Printf("✅ GEMINI GENERATION COMPLETED in %v (output: %d chars)", time.Since(startTime), len(textOutput))

	return generation, nil
}
