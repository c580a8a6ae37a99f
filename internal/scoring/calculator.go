package scoring

import "math"

// Calculate 根据互动数据与平台权重计算单个帖子的得分
//
// 纯函数：未知平台权重为 0，结果不小于 0，不做四舍五入。
func Calculate(metrics MetricsSnapshot, rules ScoringRules, platform Platform) float64 {
	m := metrics.Normalize()
	w := rules.Weights(platform)

	raw := float64(m.LikesCount)*w.LikesPoint +
		float64(m.CommentsCount)*w.CommentsPoint +
		float64(m.SharesCount)*w.SharesPoint +
		float64(m.ViewsCount)*w.ViewsPoint

	if math.IsNaN(raw) || raw < 0 {
		return 0
	}
	return raw
}

// RoundScore 展示用的四舍五入
func RoundScore(value float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
