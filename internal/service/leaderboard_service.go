package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/model"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
)

const scoreDisplayPlaces = 4

type LeaderboardOptions struct {
	DefaultLimit int
	MaxLimit     int
}

type LeaderboardService interface {
	CampaignLeaderboard(ctx context.Context, campaignID string) (*dto.LeaderboardDTO, error)
	PublicLeaderboard(ctx context.Context, campaignID string, limit *int, offset int) (*dto.LeaderboardDTO, error)
}

type LeaderboardServiceImpl struct {
	campaignRepo repository.CampaignRepo
	postRepo     repository.PostRepo
	opts         LeaderboardOptions
}

func NewLeaderboardService(campaignRepo repository.CampaignRepo, postRepo repository.PostRepo, opts LeaderboardOptions) LeaderboardService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	return &LeaderboardServiceImpl{campaignRepo: campaignRepo, postRepo: postRepo, opts: opts}
}

// CampaignLeaderboard 活动内部视图，不分页
func (s *LeaderboardServiceImpl) CampaignLeaderboard(ctx context.Context, campaignID string) (*dto.LeaderboardDTO, error) {
	return s.build(ctx, campaignID, scoring.Page{})
}

// PublicLeaderboard 公开分页视图，limit 缺省取默认值且不超过上限
func (s *LeaderboardServiceImpl) PublicLeaderboard(ctx context.Context, campaignID string, limit *int, offset int) (*dto.LeaderboardDTO, error) {
	size := s.opts.DefaultLimit
	if limit != nil {
		size = max(min(*limit, s.opts.MaxLimit), 0)
	}
	return s.build(ctx, campaignID, scoring.Page{Limit: &size, Offset: offset})
}

func (s *LeaderboardServiceImpl) build(ctx context.Context, campaignID string, page scoring.Page) (*dto.LeaderboardDTO, error) {
	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	posts, err := s.postRepo.ListLeaderboardPosts(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	lb := scoring.BuildLeaderboard(toScored(posts), page)

	result := &dto.LeaderboardDTO{
		CampaignID:     campaignID,
		Entries:        toEntryDTOs(lb.Entries),
		Total:          lb.Total,
		Limit:          page.Limit,
		Offset:         max(page.Offset, 0),
		BonusesApplied: false,
	}
	return result, nil
}

func toScored(posts []*model.Post) []scoring.ScoredPost {
	scored := make([]scoring.ScoredPost, 0, len(posts))
	for _, post := range posts {
		scored = append(scored, post.ToScored())
	}
	return scored
}

func toEntryDTOs(entries []scoring.Entry) []*dto.LeaderboardEntryDTO {
	result := make([]*dto.LeaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.LeaderboardEntryDTO{
			Rank:         e.Rank,
			InfluencerID: e.InfluencerID,
			TotalScore:   scoring.RoundScore(e.TotalScore, scoreDisplayPlaces),
			PostCount:    e.PostCount,
		})
	}
	return result
}
