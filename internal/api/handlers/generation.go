package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pagecanvas/canvas-api/internal/api/middleware"
	"github.com/pagecanvas/canvas-api/internal/config"
	"github.com/pagecanvas/canvas-api/internal/llm"
	"github.com/pagecanvas/canvas-api/internal/logger"
	"github.com/pagecanvas/canvas-api/internal/metrics"
	"github.com/pagecanvas/canvas-api/internal/models"
	"github.com/pagecanvas/canvas-api/internal/prompt"
	"gorm.io/gorm"
)

const (
	defaultTemperature = 0.3
	maxAttachments     = 8
	maxNameWords       = 6
	untitledName       = "Untitled creation"
)

// allowedModels lists the models this service will forward requests to
var allowedModels = map[string]bool{
	"gemini-2.5-flash": true,
	"gemini-2.5-pro":   true,
	"gpt-4o":           true,
	"gpt-4o-mini":      true,
}

var generationMetrics = metrics.NewSentryMetrics()

// GenerationHandler turns user requests into persisted creations
type GenerationHandler struct {
	providers    ProviderSource
	store        CreationStore
	builder      *prompt.Builder
	loader       *prompt.Loader
	retryCfg     llm.RetryConfig
	defaultModel string
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(cfg *config.Config, providers ProviderSource, store CreationStore) *GenerationHandler {
	return &GenerationHandler{
		providers: providers,
		store:     store,
		builder:   prompt.NewBuilder(),
		loader:    prompt.NewLoader(),
		retryCfg: llm.RetryConfig{
			MaxRetries:   cfg.MaxRetries,
			InitialDelay: cfg.RetryInitialDelay,
			Multiplier:   2,
		},
		defaultModel: cfg.DefaultModel,
	}
}

// CreateCreationRequest is the payload for generating a new creation
type CreateCreationRequest struct {
	Prompt      string           `json:"prompt"`
	Name        string           `json:"name"`
	Model       string           `json:"model"`
	Attachments []llm.Attachment `json:"attachments"`
}

// RefineCreationRequest is the payload for changing an existing creation
type RefineCreationRequest struct {
	Instruction string `json:"instruction" binding:"required"`
	Model       string `json:"model"`
}

// Generate handles POST /api/v1/creations
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req CreateCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" && len(req.Attachments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt or at least one attachment is required"})
		return
	}
	if len(req.Attachments) > maxAttachments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many attachments"})
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}
	if !allowedModels[model] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid model. Allowed: gemini-2.5-flash, gemini-2.5-pro, gpt-4o, gpt-4o-mini",
		})
		return
	}

	systemPrompt, err := h.loader.GetSystemPrompt()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load system prompt"})
		return
	}

	genReq := &llm.GenerationRequest{
		Model:             model,
		SystemInstruction: systemPrompt,
		Prompt:            h.builder.BuildUserPrompt(req.Prompt, req.Attachments),
		Attachments:       req.Attachments,
		Temperature:       defaultTemperature,
	}
	if err := genReq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	html, result, ok := h.generate(c, model, genReq)
	if !ok {
		return
	}

	ownerID, _ := middleware.GetUserIDFromGateway(c)
	creation := &models.Creation{
		OwnerID: ownerID,
		Name:    creationName(req.Name, req.Prompt),
		Prompt:  req.Prompt,
		HTML:    html,
		Model:   model,
	}
	if err := h.store.Create(creation); err != nil {
		logger.Error("Failed to persist creation", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save creation"})
		return
	}

	log.Printf("📊 Token usage - Total: %d, Input: %d, Output: %d",
		result.TotalTokens, result.InputTokens, result.OutputTokens)

	c.JSON(http.StatusCreated, creation)
}

// Refine handles POST /api/v1/creations/:id/refine. A refinement is only
// valid once a prior generated document exists for the creation.
func (h *GenerationHandler) Refine(c *gin.Context) {
	var req RefineCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, _ := middleware.GetUserIDFromGateway(c)
	creation, err := h.store.Get(ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creation not found"})
			return
		}
		logger.Error("Failed to load creation", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load creation"})
		return
	}
	if creation.HTML == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Creation has no generated document to refine"})
		return
	}

	model := req.Model
	if model == "" {
		model = creation.Model
	}
	if !allowedModels[model] {
		model = h.defaultModel
	}

	systemPrompt, err := h.loader.GetSystemPrompt()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load system prompt"})
		return
	}
	refinement, err := h.loader.GetRefinementInstructions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load refinement instructions"})
		return
	}

	genReq := &llm.GenerationRequest{
		Model:             model,
		SystemInstruction: systemPrompt + "\n\n" + refinement,
		Prompt:            h.builder.BuildRefinementPrompt(creation.HTML, req.Instruction),
		Temperature:       defaultTemperature,
	}

	html, result, ok := h.generate(c, model, genReq)
	if !ok {
		return
	}

	updated, err := h.store.UpdateHTML(ownerID, creation.ID, html)
	if err != nil {
		logger.Error("Failed to persist refinement", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save creation"})
		return
	}

	log.Printf("📊 Token usage (refine) - Total: %d, Input: %d, Output: %d",
		result.TotalTokens, result.InputTokens, result.OutputTokens)

	c.JSON(http.StatusOK, updated)
}

// generate runs the retrying model call and normalizes the output. On failure
// it writes the error response and returns ok=false.
func (h *GenerationHandler) generate(c *gin.Context, model string, genReq *llm.GenerationRequest) (string, *llm.GenerationResult, bool) {
	provider, err := h.providers.GetProvider(c.Request.Context(), model)
	if err != nil {
		logger.Error("Provider unavailable", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation provider unavailable"})
		return "", nil, false
	}

	startTime := time.Now()
	result, err := llm.CallWithRetry(c.Request.Context(), h.retryCfg, func() (*llm.GenerationResult, error) {
		return provider.Generate(c.Request.Context(), genReq)
	})
	duration := time.Since(startTime)
	generationMetrics.RecordGenerationDuration(c.Request.Context(), duration, err == nil)

	if err != nil {
		if errors.Is(err, llm.ErrQuotaExhausted) {
			logger.Warn("Generation quota exhausted", logger.WithContext(c))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "The model is rate limited right now. Try again in a minute.",
				"request_id": c.GetString("request_id"),
			})
			return "", nil, false
		}
		fields := logger.WithContext(c)
		fields["model"] = model
		logger.Error("Generation failed", err, fields)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate creation"})
		return "", nil, false
	}

	html := llm.StripCodeFence(result.HTML)
	if html == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Model returned an empty document"})
		return "", nil, false
	}

	generationMetrics.RecordTokenUsage(c.Request.Context(), model, result.TotalTokens, result.InputTokens, result.OutputTokens)

	return html, result, true
}

// creationName picks a display name: the explicit name when given, otherwise
// the first words of the prompt.
func creationName(explicit, promptText string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return name
	}

	words := strings.Fields(promptText)
	if len(words) == 0 {
		return untitledName
	}
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}
	return strings.Join(words, " ")
}
