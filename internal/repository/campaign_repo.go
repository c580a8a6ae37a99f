package repository

import (
	"Campaigner/internal/model"
	"Campaigner/internal/scoring"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CampaignFilter struct {
	BrandID *uint64
	Status  string
}

type CampaignRepo interface {
	CreateCampaign(ctx context.Context, campaign *model.Campaign) error
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter, limit, offset int) ([]*model.Campaign, int64, error)
	UpdateScoringRules(ctx context.Context, id string, rules scoring.ScoringRules) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

type CampaignRepoImpl struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) CampaignRepo {
	return &CampaignRepoImpl{db: db}
}

func (s *CampaignRepoImpl) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	return s.db.WithContext(ctx).Create(campaign).Error
}

// GetCampaign 不存在时返回 nil, nil
func (s *CampaignRepoImpl) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignRepoImpl) ListCampaigns(ctx context.Context, filter CampaignFilter, limit, offset int) ([]*model.Campaign, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Campaign{})
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []*model.Campaign
	err := query.Order("created_at desc").Order("id").Limit(limit).Offset(offset).Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// UpdateScoringRules 整体替换计分规则
func (s *CampaignRepoImpl) UpdateScoringRules(ctx context.Context, id string, rules scoring.ScoringRules) error {
	return s.db.WithContext(ctx).
		Model(&model.Campaign{ID: id}).
		Select("scoring_rules").
		Updates(&model.Campaign{ScoringRules: rules}).Error
}

func (s *CampaignRepoImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.Campaign{ID: id}).
		Update("status", status).Error
}
