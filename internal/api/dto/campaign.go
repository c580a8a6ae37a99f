package dto

import (
	"Campaigner/internal/scoring"
	"time"
)

type CreateCampaignReq struct {
	BrandID      uint64               `json:"brand_id"` // 仅管理员代建时使用
	Name         string               `json:"name" validate:"required,max=255"`
	Description  string               `json:"description" validate:"max=5000"`
	StartsAt     *time.Time           `json:"starts_at"`
	EndsAt       *time.Time           `json:"ends_at"`
	Budget       float64              `json:"budget" validate:"gte=0"`
	ScoringRules scoring.ScoringRules `json:"scoring_rules"`
}

type UpdateScoringRulesReq struct {
	ScoringRules scoring.ScoringRules `json:"scoring_rules"`
}

type UpdateCampaignStatusReq struct {
	Status string `json:"status" validate:"required,oneof=draft active completed"`
}

type ListCampaignsReq struct {
	BrandID  *uint64 `form:"brand_id"`
	Status   string  `form:"status" validate:"omitempty,oneof=draft active completed"`
	Page     int     `form:"page" validate:"omitempty,gte=1"`
	PageSize int     `form:"page_size" validate:"omitempty,gte=1,lte=100"`
}

type CampaignDTO struct {
	ID           string               `json:"id"`
	BrandID      uint64               `json:"brand_id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Status       string               `json:"status"`
	StartsAt     *time.Time           `json:"starts_at"`
	EndsAt       *time.Time           `json:"ends_at"`
	Budget       float64              `json:"budget"`
	ScoringRules scoring.ScoringRules `json:"scoring_rules"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type CampaignListDTO struct {
	List     []*CampaignDTO `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type ReviewParticipantReq struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type ParticipantDTO struct {
	ID           uint64    `json:"id"`
	CampaignID   string    `json:"campaign_id"`
	InfluencerID uint64    `json:"influencer_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
