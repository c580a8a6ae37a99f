package model

import (
	"Campaigner/internal/scoring"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 达人为活动提交的社媒内容
type Post struct {
	ID                 string                   `gorm:"type:char(36);primaryKey" json:"id"`
	CampaignID         string                   `gorm:"type:char(36);not null;index:idx_post_campaign_influencer" json:"campaign_id"`
	InfluencerID       uint64                   `gorm:"not null;index:idx_post_campaign_influencer" json:"influencer_id"`
	Platform           string                   `gorm:"type:varchar(32);not null" json:"platform"`
	PostURL            string                   `gorm:"type:varchar(512);not null" json:"post_url"`
	Caption            string                   `gorm:"type:text" json:"caption"`
	IsValidForCampaign bool                     `gorm:"not null;default:false" json:"is_valid_for_campaign"`
	ValidationNotes    string                   `gorm:"type:varchar(1000)" json:"validation_notes"`
	Metrics            *scoring.MetricsSnapshot `gorm:"type:json;serializer:json" json:"metrics"`
	MetricsFetchedAt   *time.Time               `json:"metrics_fetched_at"`
	Score              *float64                 `json:"score"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

func (Post) TableName() string {
	return "campaign_posts"
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ToScored 转为排行榜聚合使用的视图
func (p *Post) ToScored() scoring.ScoredPost {
	return scoring.ScoredPost{
		InfluencerID: p.InfluencerID,
		Score:        p.Score,
		IsValid:      p.IsValidForCampaign,
	}
}
