package model

import (
	"Campaigner/internal/scoring"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Campaign struct {
	ID           string               `gorm:"type:char(36);primaryKey" json:"id"`
	BrandID      uint64               `gorm:"not null;index:idx_brand_id" json:"brand_id"`
	Name         string               `gorm:"type:varchar(255);not null" json:"name"`
	Description  string               `gorm:"type:text" json:"description"`
	Status       string               `gorm:"type:varchar(16);not null;default:draft;index:idx_status" json:"status"` // draft, active, completed
	StartsAt     *time.Time           `json:"starts_at"`
	EndsAt       *time.Time           `json:"ends_at"`
	Budget       float64              `gorm:"type:decimal(14,2);not null;default:0" json:"budget"`
	ScoringRules scoring.ScoringRules `gorm:"type:json;serializer:json" json:"scoring_rules"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
