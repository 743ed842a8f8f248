package handlers

import (
	"context"

	"github.com/pagecanvas/canvas-api/internal/llm"
	"github.com/pagecanvas/canvas-api/internal/models"
)

// CreationStore is the persistence surface the handlers need. Implemented by
// services.CreationsService; tests substitute an in-memory fake.
type CreationStore interface {
	Create(creation *models.Creation) error
	Get(ownerID, id string) (*models.Creation, error)
	List(ownerID string, limit int) ([]models.Creation, error)
	Rename(ownerID, id, name string) (*models.Creation, error)
	UpdateHTML(ownerID, id, html string) (*models.Creation, error)
	Delete(ownerID, id string) error
}

// ProviderSource resolves a model name to a generation provider.
// Implemented by llm.ProviderFactory.
type ProviderSource interface {
	GetProvider(ctx context.Context, model string) (llm.Provider, error)
}
