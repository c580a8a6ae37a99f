package model

import (
	"time"
)

// CampaignParticipant 达人参与活动的申请记录
type CampaignParticipant struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	CampaignID   string    `gorm:"type:char(36);not null;uniqueIndex:idx_campaign_influencer" json:"campaign_id"`
	InfluencerID uint64    `gorm:"not null;uniqueIndex:idx_campaign_influencer;index:idx_influencer_id" json:"influencer_id"`
	Status       string    `gorm:"type:varchar(16);not null;default:pending" json:"status"` // pending, approved, rejected
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CampaignParticipant) TableName() string {
	return "campaign_participants"
}
