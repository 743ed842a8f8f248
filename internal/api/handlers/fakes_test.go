package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagecanvas/canvas-api/internal/llm"
	"github.com/pagecanvas/canvas-api/internal/models"
	"gorm.io/gorm"
)

// memoryStore is an in-memory CreationStore for handler tests
type memoryStore struct {
	mu        sync.Mutex
	creations map[string]*models.Creation
	nextID    int
	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{creations: make(map[string]*models.Creation)}
}

func (s *memoryStore) Create(creation *models.Creation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if creation.ID == "" {
		s.nextID++
		creation.ID = fmt.Sprintf("creation-%d", s.nextID)
	}
	clone := *creation
	s.creations[creation.ID] = &clone
	return nil
}

func (s *memoryStore) Get(ownerID, id string) (*models.Creation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creation, ok := s.creations[id]
	if !ok || (ownerID != "" && creation.OwnerID != ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *creation
	return &clone, nil
}

func (s *memoryStore) List(ownerID string, limit int) ([]models.Creation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Creation
	for _, creation := range s.creations {
		if ownerID == "" || creation.OwnerID == ownerID {
			out = append(out, *creation)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) Rename(ownerID, id, name string) (*models.Creation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creation, ok := s.creations[id]
	if !ok || (ownerID != "" && creation.OwnerID != ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	creation.Name = name
	clone := *creation
	return &clone, nil
}

func (s *memoryStore) UpdateHTML(ownerID, id, html string) (*models.Creation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creation, ok := s.creations[id]
	if !ok || (ownerID != "" && creation.OwnerID != ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	creation.HTML = html
	clone := *creation
	return &clone, nil
}

func (s *memoryStore) Delete(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creation, ok := s.creations[id]
	if !ok || (ownerID != "" && creation.OwnerID != ownerID) {
		return gorm.ErrRecordNotFound
	}
	delete(s.creations, id)
	return nil
}

// stubProvider replays a fixed sequence of generation outcomes
type stubProvider struct {
	outcomes []stubOutcome
	calls    int
}

type stubOutcome struct {
	result *llm.GenerationResult
	err    error
}

func (p *stubProvider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResult, error) {
	outcome := p.outcomes[len(p.outcomes)-1]
	if p.calls < len(p.outcomes) {
		outcome = p.outcomes[p.calls]
	}
	p.calls++
	return outcome.result, outcome.err
}

func (p *stubProvider) Name() string { return "stub" }

// stubProviderSource hands back the same provider for every model
type stubProviderSource struct {
	provider llm.Provider
	err      error
}

func (s *stubProviderSource) GetProvider(ctx context.Context, model string) (llm.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}
