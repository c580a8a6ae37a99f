package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize  = 20
	reportTopN       = 3
	reportLinkExpiry = time.Hour
)

// ReportStore 报表导出目标
type ReportStore interface {
	PutReport(ctx context.Context, campaignID string, generatedAt time.Time, data []byte) (string, error)
	PresignReport(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, actor Actor, req *dto.CreateCampaignReq) (*dto.CampaignDTO, error)
	GetCampaign(ctx context.Context, id string) (*dto.CampaignDTO, error)
	ListCampaigns(ctx context.Context, actor Actor, req *dto.ListCampaignsReq) (*dto.CampaignListDTO, error)
	UpdateScoringRules(ctx context.Context, actor Actor, id string, rules scoring.ScoringRules) (*dto.CampaignDTO, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status string) (*dto.CampaignDTO, error)
	ApplyParticipant(ctx context.Context, actor Actor, campaignID string) (*dto.ParticipantDTO, error)
	ReviewParticipant(ctx context.Context, actor Actor, campaignID string, influencerID uint64, status string) (*dto.ParticipantDTO, error)
	ListParticipants(ctx context.Context, actor Actor, campaignID string, status string) ([]*dto.ParticipantDTO, error)
	Report(ctx context.Context, actor Actor, campaignID string) (*dto.CampaignReportDTO, error)
	ExportReport(ctx context.Context, actor Actor, campaignID string) (*dto.ReportExportDTO, error)
}

type CampaignServiceImpl struct {
	campaignRepo    repository.CampaignRepo
	participantRepo repository.ParticipantRepo
	postRepo        repository.PostRepo
	reportStore     ReportStore
}

func NewCampaignService(
	campaignRepo repository.CampaignRepo,
	participantRepo repository.ParticipantRepo,
	postRepo repository.PostRepo,
	reportStore ReportStore,
) CampaignService {
	return &CampaignServiceImpl{
		campaignRepo:    campaignRepo,
		participantRepo: participantRepo,
		postRepo:        postRepo,
		reportStore:     reportStore,
	}
}

// 允许的状态流转
var statusTransitions = map[string]string{
	consts.CampaignStatusDraft:  consts.CampaignStatusActive,
	consts.CampaignStatusActive: consts.CampaignStatusCompleted,
}

func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, actor Actor, req *dto.CreateCampaignReq) (*dto.CampaignDTO, error) {
	brandID := actor.UserID
	if actor.IsAdmin() && req.BrandID != 0 {
		brandID = req.BrandID
	} else if !actor.HasRole(consts.RoleBrand) {
		return nil, ErrParamInvalid
	}

	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, ErrParamInvalid
	}
	if math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) {
		return nil, ErrParamInvalid
	}

	rules := req.ScoringRules.Clone()
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		BrandID:      brandID,
		Name:         req.Name,
		Description:  req.Description,
		Status:       consts.CampaignStatusDraft,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Budget:       req.Budget,
		ScoringRules: rules,
	}
	if err := s.campaignRepo.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignDTO(campaign), nil
}

func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, id string) (*dto.CampaignDTO, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCampaignDTO(campaign), nil
}

// ListCampaigns 品牌方只能看到自己的活动
func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context, actor Actor, req *dto.ListCampaignsReq) (*dto.CampaignListDTO, error) {
	page, pageSize := req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filter := repository.CampaignFilter{BrandID: req.BrandID, Status: req.Status}
	if !actor.IsAdmin() && actor.HasRole(consts.RoleBrand) {
		brandID := actor.UserID
		filter.BrandID = &brandID
	}

	campaigns, total, err := s.campaignRepo.ListCampaigns(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		list = append(list, toCampaignDTO(c))
	}
	return &dto.CampaignListDTO{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateScoringRules 替换计分规则，已有分数需重新触发重算才会变化
func (s *CampaignServiceImpl) UpdateScoringRules(ctx context.Context, actor Actor, id string, rules scoring.ScoringRules) (*dto.CampaignDTO, error) {
	campaign, err := s.getManagedCampaign(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	rules = rules.Clone()
	if err = rules.Validate(); err != nil {
		return nil, err
	}
	if err = s.campaignRepo.UpdateScoringRules(ctx, id, rules); err != nil {
		return nil, err
	}

	campaign.ScoringRules = rules
	return toCampaignDTO(campaign), nil
}

func (s *CampaignServiceImpl) UpdateStatus(ctx context.Context, actor Actor, id string, status string) (*dto.CampaignDTO, error) {
	campaign, err := s.getManagedCampaign(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if campaign.Status == status {
		return toCampaignDTO(campaign), nil
	}
	if statusTransitions[campaign.Status] != status {
		return nil, ErrInvalidStatusTransition
	}

	if err = s.campaignRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	campaign.Status = status
	return toCampaignDTO(campaign), nil
}

// ApplyParticipant 达人申请参与活动，初始为待审核
func (s *CampaignServiceImpl) ApplyParticipant(ctx context.Context, actor Actor, campaignID string) (*dto.ParticipantDTO, error) {
	campaign, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status == consts.CampaignStatusCompleted {
		return nil, ErrCampaignNotActive
	}

	participant := &model.CampaignParticipant{
		CampaignID:   campaignID,
		InfluencerID: actor.UserID,
		Status:       consts.ParticipantStatusPending,
	}
	if err = s.participantRepo.CreateParticipant(ctx, participant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrParticipantExists
		}
		return nil, err
	}
	return toParticipantDTO(participant), nil
}

func (s *CampaignServiceImpl) ReviewParticipant(ctx context.Context, actor Actor, campaignID string, influencerID uint64, status string) (*dto.ParticipantDTO, error) {
	if status != consts.ParticipantStatusApproved && status != consts.ParticipantStatusRejected {
		return nil, ErrParamInvalid
	}
	if _, err := s.getManagedCampaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}

	participant, err := s.participantRepo.GetParticipant(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	if err = s.participantRepo.UpdateStatus(ctx, campaignID, influencerID, status); err != nil {
		return nil, err
	}
	participant.Status = status
	return toParticipantDTO(participant), nil
}

func (s *CampaignServiceImpl) ListParticipants(ctx context.Context, actor Actor, campaignID string, status string) ([]*dto.ParticipantDTO, error) {
	if _, err := s.getManagedCampaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByCampaign(ctx, campaignID, status)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ParticipantDTO, 0, len(participants))
	for _, p := range participants {
		result = append(result, toParticipantDTO(p))
	}
	return result, nil
}

// Report 汇总活动的帖子、互动与得分，与排行榜口径一致只统计有效帖子的分数
func (s *CampaignServiceImpl) Report(ctx context.Context, actor Actor, campaignID string) (*dto.CampaignReportDTO, error) {
	campaign, err := s.getManagedCampaign(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}

	var (
		posts  []*model.Post
		counts map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.ListByCampaign(gctx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.participantRepo.CountByStatus(gctx, campaignID)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	report := &dto.CampaignReportDTO{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Status:       campaign.Status,
		Participants: counts,
		TotalPosts:   len(posts),
		GeneratedAt:  time.Now(),
	}

	scoredValid := 0
	for _, post := range posts {
		if post.IsValidForCampaign {
			report.ValidPosts++
		}
		if post.Metrics != nil {
			report.PostsWithMetrics++
			report.Engagement.Likes += post.Metrics.LikesCount
			report.Engagement.Comments += post.Metrics.CommentsCount
			report.Engagement.Shares += post.Metrics.SharesCount
			report.Engagement.Views += post.Metrics.ViewsCount
		}
		if post.Score == nil {
			continue
		}
		report.ScoredPosts++
		if post.IsValidForCampaign {
			scoredValid++
			report.TotalScore += *post.Score
			report.TopScore = max(report.TopScore, *post.Score)
		}
	}
	if scoredValid > 0 {
		report.AverageScore = scoring.RoundScore(report.TotalScore/float64(scoredValid), scoreDisplayPlaces)
	}
	report.TotalScore = scoring.RoundScore(report.TotalScore, scoreDisplayPlaces)
	report.TopScore = scoring.RoundScore(report.TopScore, scoreDisplayPlaces)

	top := reportTopN
	lb := scoring.BuildLeaderboard(toScored(posts), scoring.Page{Limit: &top})
	report.TopInfluencers = toEntryDTOs(lb.Entries)

	return report, nil
}

// ExportReport 生成报表写入对象存储并返回临时下载地址
func (s *CampaignServiceImpl) ExportReport(ctx context.Context, actor Actor, campaignID string) (*dto.ReportExportDTO, error) {
	report, err := s.Report(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	key, err := s.reportStore.PutReport(ctx, campaignID, report.GeneratedAt, data)
	if err != nil {
		return nil, err
	}
	url, err := s.reportStore.PresignReport(ctx, key, reportLinkExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.ReportExportDTO{
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(reportLinkExpiry),
	}, nil
}

func (s *CampaignServiceImpl) getCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *CampaignServiceImpl) getManagedCampaign(ctx context.Context, actor Actor, id string) (*model.Campaign, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(campaign) {
		return nil, UnauthorizedError
	}
	return campaign, nil
}
