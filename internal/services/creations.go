package services

import (
	"github.com/pagecanvas/canvas-api/internal/models"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// CreationsService persists creation history. When ownerID is non-empty every
// query is scoped to that owner, so gateway users only ever see their own
// creations.
type CreationsService struct {
	db *gorm.DB
}

func NewCreationsService(db *gorm.DB) *CreationsService {
	return &CreationsService{db: db}
}

// Create stores a new creation
func (s *CreationsService) Create(creation *models.Creation) error {
	return s.db.Create(creation).Error
}

// Get retrieves a single creation by id
func (s *CreationsService) Get(ownerID, id string) (*models.Creation, error) {
	var creation models.Creation
	if err := s.scoped(ownerID).Where("id = ?", id).First(&creation).Error; err != nil {
		return nil, err
	}
	return &creation, nil
}

// List returns creations newest-first
func (s *CreationsService) List(ownerID string, limit int) ([]models.Creation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var creations []models.Creation
	err := s.scoped(ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&creations).Error
	if err != nil {
		return nil, err
	}
	return creations, nil
}

// Rename updates a creation's display name
func (s *CreationsService) Rename(ownerID, id, name string) (*models.Creation, error) {
	creation, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	creation.Name = name
	if err := s.db.Save(creation).Error; err != nil {
		return nil, err
	}
	return creation, nil
}

// UpdateHTML replaces a creation's document after a refinement
func (s *CreationsService) UpdateHTML(ownerID, id, html string) (*models.Creation, error) {
	creation, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	creation.HTML = html
	if err := s.db.Save(creation).Error; err != nil {
		return nil, err
	}
	return creation, nil
}

// Delete soft-deletes a creation
func (s *CreationsService) Delete(ownerID, id string) error {
	result := s.scoped(ownerID).Where("id = ?", id).Delete(&models.Creation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CreationsService) scoped(ownerID string) *gorm.DB {
	query := s.db.Model(&models.Creation{})
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	return query
}
