package repository

import (
	"Campaigner/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ParticipantRepo interface {
	CreateParticipant(ctx context.Context, participant *model.CampaignParticipant) error
	GetParticipant(ctx context.Context, campaignID string, influencerID uint64) (*model.CampaignParticipant, error)
	UpdateStatus(ctx context.Context, campaignID string, influencerID uint64, status string) error
	ListByCampaign(ctx context.Context, campaignID string, status string) ([]*model.CampaignParticipant, error)
	CountByStatus(ctx context.Context, campaignID string) (map[string]int64, error)
}

type ParticipantRepoImpl struct {
	db *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) ParticipantRepo {
	return &ParticipantRepoImpl{db: db}
}

// CreateParticipant 同一达人重复申请返回 ErrDuplicate
func (s *ParticipantRepoImpl) CreateParticipant(ctx context.Context, participant *model.CampaignParticipant) error {
	err := s.db.WithContext(ctx).Create(participant).Error
	if isDuplicateError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *ParticipantRepoImpl) GetParticipant(ctx context.Context, campaignID string, influencerID uint64) (*model.CampaignParticipant, error) {
	var participant model.CampaignParticipant
	err := s.db.WithContext(ctx).
		Where("campaign_id = ? AND influencer_id = ?", campaignID, influencerID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

func (s *ParticipantRepoImpl) UpdateStatus(ctx context.Context, campaignID string, influencerID uint64, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.CampaignParticipant{}).
		Where("campaign_id = ? AND influencer_id = ?", campaignID, influencerID).
		Update("status", status).Error
}

// ListByCampaign status 为空时返回全部
func (s *ParticipantRepoImpl) ListByCampaign(ctx context.Context, campaignID string, status string) ([]*model.CampaignParticipant, error) {
	query := s.db.WithContext(ctx).Where("campaign_id = ?", campaignID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var participants []*model.CampaignParticipant
	if err := query.Order("id").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *ParticipantRepoImpl) CountByStatus(ctx context.Context, campaignID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.CampaignParticipant{}).
		Select("status, count(*) AS total").
		Where("campaign_id = ?", campaignID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
