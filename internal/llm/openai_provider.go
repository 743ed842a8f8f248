package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerNameOpenAI = "openai"

// OpenAIProvider implements the Provider interface using OpenAI's Chat
// Completions API. Attachments are limited to images, delivered as data URLs.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client: &client,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate performs a single generation call against the OpenAI API
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResult, error) {
	startTime := time.Now()
	log.Printf("🎨 OPENAI GENERATION REQUEST STARTED (Model: %s, attachments: %d)", request.Model, len(request.Attachments))

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	userParts, err := p.buildUserParts(request)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model: request.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemInstruction),
			openai.UserMessage(userParts),
		},
		Temperature: openai.Float(float64(request.Temperature)),
	}

	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, remoteErrorFromOpenAI(err)
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai response did not include any output text")
	}

	generation := &GenerationResult{
		HTML:         resp.Choices[0].Message.Content,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}

	log.Printf("✅ OPENAI GENERATION COMPLETED in %v (output: %d chars)", time.Since(startTime), len(generation.HTML))

	transaction.SetTag("success", "true")
	return generation, nil
}

// buildUserParts assembles the multimodal user message: prompt text first,
// then one image part per attachment, preserving caller order.
func (p *OpenAIProvider) buildUserParts(request *GenerationRequest) ([]openai.ChatCompletionContentPartUnionParam, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(request.Prompt),
	}

	for _, att := range request.Attachments {
		if !strings.HasPrefix(att.MimeType, "image/") {
			return nil, fmt.Errorf("openai provider only supports image attachments, got %q", att.MimeType)
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", att.MimeType, base64.StdEncoding.EncodeToString(att.Data))
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}))
	}

	return parts, nil
}

// remoteErrorFromOpenAI maps the SDK error onto the tagged RemoteError form
func remoteErrorFromOpenAI(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &RemoteError{
			StatusCode: apiErr.StatusCode,
			Status:     apiErr.Type,
			Message:    apiErr.Message,
		}
	}
	return fmt.Errorf("openai request failed: %w", err)
}
