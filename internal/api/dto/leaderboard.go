package dto

type LeaderboardQuery struct {
	Limit  *int `form:"limit"`
	Offset int  `form:"offset"`
}

type LeaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	InfluencerID uint64  `json:"influencer_id"`
	TotalScore   float64 `json:"total_score"`
	PostCount    int     `json:"post_count"`
}

type LeaderboardDTO struct {
	CampaignID     string                 `json:"campaign_id"`
	Entries        []*LeaderboardEntryDTO `json:"entries"`
	Total          int                    `json:"total"`
	Limit          *int                   `json:"limit"`
	Offset         int                    `json:"offset"`
	BonusesApplied bool                   `json:"bonuses_applied"`
}
