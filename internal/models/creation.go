package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creation is one generated web page together with the request that produced
// it. HTML always holds the normalized document, never a fenced response.
type Creation struct {
	ID        string         `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   string         `gorm:"index" json:"-"` // gateway user id; empty when auth is off
	Name      string         `gorm:"not null" json:"name"`
	Prompt    string         `gorm:"type:text" json:"prompt"`
	HTML      string         `gorm:"type:text;not null" json:"html"`
	Model     string         `json:"model"`
}

// BeforeCreate assigns an ID when none was provided
func (c *Creation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
