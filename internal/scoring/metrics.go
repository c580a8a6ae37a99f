package scoring

import (
	"github.com/goccy/go-json"
)

// MetricsSnapshot 某一时刻抓取到的帖子原始互动数据，每次抓取整体替换
type MetricsSnapshot struct {
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
	SharesCount   int64  `json:"shares_count"`
	ViewsCount    int64  `json:"views_count"`
	Reach         *int64 `json:"reach,omitempty"`
	Impressions   *int64 `json:"impressions,omitempty"`
}

// UnmarshalJSON 缺失字段按 0 处理，负数计数归零
func (m *MetricsSnapshot) UnmarshalJSON(data []byte) error {
	type raw MetricsSnapshot
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = MetricsSnapshot(r).Normalize()
	return nil
}

// Normalize 返回计数均非负的副本
func (m MetricsSnapshot) Normalize() MetricsSnapshot {
	m.LikesCount = nonNegative(m.LikesCount)
	m.CommentsCount = nonNegative(m.CommentsCount)
	m.SharesCount = nonNegative(m.SharesCount)
	m.ViewsCount = nonNegative(m.ViewsCount)
	if m.Reach != nil {
		v := nonNegative(*m.Reach)
		m.Reach = &v
	}
	if m.Impressions != nil {
		v := nonNegative(*m.Impressions)
		m.Impressions = &v
	}
	return m
}

// Engagement 互动总量（点赞 + 评论 + 分享）
func (m MetricsSnapshot) Engagement() int64 {
	return m.LikesCount + m.CommentsCount + m.SharesCount
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
