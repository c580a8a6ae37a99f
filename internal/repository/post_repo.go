package repository

import (
	"Campaigner/internal/model"
	"Campaigner/internal/scoring"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id string) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*model.Post, error)
	ListByInfluencer(ctx context.Context, campaignID string, influencerID uint64) ([]*model.Post, error)
	ListLeaderboardPosts(ctx context.Context, campaignID string) ([]*model.Post, error)
	UpdateScore(ctx context.Context, id string, score float64) error
	UpdateMetrics(ctx context.Context, id string, metrics *scoring.MetricsSnapshot, fetchedAt time.Time) error
	UpdateValidation(ctx context.Context, id string, valid bool, notes string) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// GetPost 不存在时返回 nil, nil
func (s *PostRepoImpl) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error) {
	var posts []*model.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCampaign 按提交时间稳定排序，供批量重算使用
func (s *PostRepoImpl) ListByCampaign(ctx context.Context, campaignID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at").Order("id").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) ListByInfluencer(ctx context.Context, campaignID string, influencerID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("campaign_id = ? AND influencer_id = ?", campaignID, influencerID).
		Order("created_at").Order("id").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListLeaderboardPosts 仅取有效且已计分的帖子
func (s *PostRepoImpl) ListLeaderboardPosts(ctx context.Context, campaignID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Select("id", "influencer_id", "is_valid_for_campaign", "score").
		Where("campaign_id = ? AND is_valid_for_campaign = ? AND score IS NOT NULL", campaignID, true).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateScore 只写 score 列，不触发 updated_at
func (s *PostRepoImpl) UpdateScore(ctx context.Context, id string, score float64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("score", score).Error
}

// UpdateMetrics 整体替换指标快照
func (s *PostRepoImpl) UpdateMetrics(ctx context.Context, id string, metrics *scoring.MetricsSnapshot, fetchedAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{ID: id}).
		Select("metrics", "metrics_fetched_at").
		Updates(&model.Post{Metrics: metrics, MetricsFetchedAt: &fetchedAt}).Error
}

func (s *PostRepoImpl) UpdateValidation(ctx context.Context, id string, valid bool, notes string) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{ID: id}).
		Select("is_valid_for_campaign", "validation_notes").
		Updates(&model.Post{IsValidForCampaign: valid, ValidationNotes: notes}).Error
}
