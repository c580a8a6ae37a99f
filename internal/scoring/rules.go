package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidScoringRules 计分规则校验失败
var ErrInvalidScoringRules = errors.New("计分规则无效")

// Platform 社交平台标识
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
)

// NormalizePlatform 平台标识统一为去空白的小写形式
func NormalizePlatform(raw string) Platform {
	return Platform(strings.ToLower(strings.TrimSpace(raw)))
}

// PlatformWeights 单个平台每单位互动对应的分值
type PlatformWeights struct {
	LikesPoint    float64 `json:"likes_point"`
	CommentsPoint float64 `json:"comments_point"`
	SharesPoint   float64 `json:"shares_point"`
	ViewsPoint    float64 `json:"views_point"`
}

// ScoringRules 活动级别的计分配置，计算时只读
//
// HashtagBonus / MentionBonus 仅作为配置保存，不参与 Calculate。
type ScoringRules struct {
	PerPlatform  map[Platform]PlatformWeights `json:"per_platform"`
	HashtagBonus int                          `json:"hashtag_bonus"`
	MentionBonus int                          `json:"mention_bonus"`
}

// Weights 返回平台权重，未配置的平台返回全零权重
func (r ScoringRules) Weights(platform Platform) PlatformWeights {
	if r.PerPlatform == nil {
		return PlatformWeights{}
	}
	return r.PerPlatform[platform]
}

// Validate 在入口处校验规则，权重与奖励分均不能为负或非有限值
func (r ScoringRules) Validate() error {
	if r.HashtagBonus < 0 {
		return fmt.Errorf("%w: hashtag_bonus must be >= 0", ErrInvalidScoringRules)
	}
	if r.MentionBonus < 0 {
		return fmt.Errorf("%w: mention_bonus must be >= 0", ErrInvalidScoringRules)
	}
	for platform, w := range r.PerPlatform {
		if platform == "" {
			return fmt.Errorf("%w: empty platform", ErrInvalidScoringRules)
		}
		if platform != NormalizePlatform(string(platform)) {
			return fmt.Errorf("%w: platform %q must be lowercase", ErrInvalidScoringRules, platform)
		}
		for name, v := range map[string]float64{
			"likes_point":    w.LikesPoint,
			"comments_point": w.CommentsPoint,
			"shares_point":   w.SharesPoint,
			"views_point":    w.ViewsPoint,
		} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s.%s", ErrInvalidScoringRules, platform, name)
			}
		}
	}
	return nil
}

// Clone 深拷贝，避免调用方修改共享的 map
func (r ScoringRules) Clone() ScoringRules {
	out := ScoringRules{
		HashtagBonus: r.HashtagBonus,
		MentionBonus: r.MentionBonus,
	}
	if r.PerPlatform != nil {
		out.PerPlatform = make(map[Platform]PlatformWeights, len(r.PerPlatform))
		for k, v := range r.PerPlatform {
			out.PerPlatform[k] = v
		}
	}
	return out
}
