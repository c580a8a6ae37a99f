package dto

import "time"

type EngagementTotalsDTO struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Views    int64 `json:"views"`
}

type CampaignReportDTO struct {
	CampaignID       string                 `json:"campaign_id"`
	CampaignName     string                 `json:"campaign_name"`
	Status           string                 `json:"status"`
	Participants     map[string]int64       `json:"participants"`
	TotalPosts       int                    `json:"total_posts"`
	ValidPosts       int                    `json:"valid_posts"`
	ScoredPosts      int                    `json:"scored_posts"`
	PostsWithMetrics int                    `json:"posts_with_metrics"`
	Engagement       EngagementTotalsDTO    `json:"engagement"`
	TotalScore       float64                `json:"total_score"`
	AverageScore     float64                `json:"average_score"`
	TopScore         float64                `json:"top_score"`
	TopInfluencers   []*LeaderboardEntryDTO `json:"top_influencers"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

type ReportExportDTO struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
