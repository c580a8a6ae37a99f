package dto

import (
	"Campaigner/internal/scoring"
	"time"
)

type SubmitPostReq struct {
	Platform string `json:"platform" validate:"required,max=32"`
	PostURL  string `json:"post_url" validate:"required,url,max=512"`
	Caption  string `json:"caption" validate:"max=5000"`
}

type ReviewPostReq struct {
	IsValidForCampaign *bool  `json:"is_valid_for_campaign" validate:"required"`
	ValidationNotes    string `json:"validation_notes" validate:"max=1000"`
}

type IngestMetricsReq struct {
	Metrics   scoring.MetricsSnapshot `json:"metrics"`
	FetchedAt *time.Time              `json:"fetched_at"`
}

type PostDTO struct {
	ID                 string                   `json:"id"`
	CampaignID         string                   `json:"campaign_id"`
	InfluencerID       uint64                   `json:"influencer_id"`
	Platform           string                   `json:"platform"`
	PostURL            string                   `json:"post_url"`
	Caption            string                   `json:"caption"`
	Hashtags           []string                 `json:"hashtags"`
	Mentions           []string                 `json:"mentions"`
	IsValidForCampaign bool                     `json:"is_valid_for_campaign"`
	ValidationNotes    string                   `json:"validation_notes"`
	Metrics            *scoring.MetricsSnapshot `json:"metrics"`
	MetricsFetchedAt   *time.Time               `json:"metrics_fetched_at"`
	Score              *float64                 `json:"score"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}
