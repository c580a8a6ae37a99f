package dto

import "time"

const (
	RecalcUpdated = "updated"
	RecalcSkipped = "skipped"
)

// RecalcResultDTO 单帖重算结果，skipped 时 score 保持原值
type RecalcResultDTO struct {
	PostID string   `json:"post_id"`
	Status string   `json:"status"`
	Score  *float64 `json:"score"`
}

type RecalcSummaryDTO struct {
	CampaignID   string `json:"campaign_id"`
	UpdatedCount int    `json:"updated_count"`
	SkippedCount int    `json:"skipped_count"`
	TimedOut     bool   `json:"timed_out"`
}

type ScoreRunDTO struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	Trigger       string    `json:"trigger"`
	OperatorID    uint64    `json:"operator_id"`
	Updated       int       `json:"updated"`
	Skipped       int       `json:"skipped"`
	FailedPostIDs []string  `json:"failed_post_ids"`
	TimedOut      bool      `json:"timed_out"`
	StartedAt     time.Time `json:"started_at"`
	DurationMs    int64     `json:"duration_ms"`
	TraceID       string    `json:"trace_id"`
}

type ScoreRunQuery struct {
	Limit int64 `form:"limit"`
}
