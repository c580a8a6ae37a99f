package scoring

import "sort"

// ScoredPost 排行榜聚合所需的最小帖子视图
type ScoredPost struct {
	InfluencerID uint64
	Score        *float64
	IsValid      bool
}

// Entry 排行榜条目，Rank 为在完整排序中的位置（从 1 开始）
type Entry struct {
	InfluencerID uint64  `json:"influencer_id"`
	TotalScore   float64 `json:"total_score"`
	PostCount    int     `json:"post_count"`
	Rank         int     `json:"rank"`
}

// Page 分页参数，Limit 为 nil 表示不限制
type Page struct {
	Limit  *int
	Offset int
}

// Leaderboard 聚合结果，Total 为参与排名的达人总数
type Leaderboard struct {
	Entries []Entry
	Total   int
}

// BuildLeaderboard 汇总有效且已计分的帖子，按总分降序排名
//
// 同分时按 InfluencerID 升序，保证结果可复现。
func BuildLeaderboard(posts []ScoredPost, page Page) Leaderboard {
	totals := make(map[uint64]*Entry)
	for _, p := range posts {
		if !p.IsValid || p.Score == nil {
			continue
		}
		e, ok := totals[p.InfluencerID]
		if !ok {
			e = &Entry{InfluencerID: p.InfluencerID}
			totals[p.InfluencerID] = e
		}
		e.TotalScore += *p.Score
		e.PostCount++
	}

	ranked := make([]Entry, 0, len(totals))
	for _, e := range totals {
		ranked = append(ranked, *e)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].InfluencerID < ranked[j].InfluencerID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(ranked) {
		offset = len(ranked)
	}
	end := len(ranked)
	if page.Limit != nil {
		limit := *page.Limit
		if limit < 0 {
			limit = 0
		}
		if offset+limit < end {
			end = offset + limit
		}
	}

	return Leaderboard{
		Entries: ranked[offset:end],
		Total:   len(ranked),
	}
}
