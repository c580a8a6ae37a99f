package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/scoring"
	"Campaigner/internal/service"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockCampaignService struct {
	mock.Mock
}

func (m *mockCampaignService) CreateCampaign(ctx context.Context, actor service.Actor, req *dto.CreateCampaignReq) (*dto.CampaignDTO, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*dto.CampaignDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) GetCampaign(ctx context.Context, id string) (*dto.CampaignDTO, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.CampaignDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) ListCampaigns(ctx context.Context, actor service.Actor, req *dto.ListCampaignsReq) (*dto.CampaignListDTO, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*dto.CampaignListDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) UpdateScoringRules(ctx context.Context, actor service.Actor, id string, rules scoring.ScoringRules) (*dto.CampaignDTO, error) {
	args := m.Called(ctx, actor, id, rules)
	res, _ := args.Get(0).(*dto.CampaignDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) UpdateStatus(ctx context.Context, actor service.Actor, id string, status string) (*dto.CampaignDTO, error) {
	args := m.Called(ctx, actor, id, status)
	res, _ := args.Get(0).(*dto.CampaignDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) ApplyParticipant(ctx context.Context, actor service.Actor, campaignID string) (*dto.ParticipantDTO, error) {
	args := m.Called(ctx, actor, campaignID)
	res, _ := args.Get(0).(*dto.ParticipantDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) ReviewParticipant(ctx context.Context, actor service.Actor, campaignID string, influencerID uint64, status string) (*dto.ParticipantDTO, error) {
	args := m.Called(ctx, actor, campaignID, influencerID, status)
	res, _ := args.Get(0).(*dto.ParticipantDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) ListParticipants(ctx context.Context, actor service.Actor, campaignID string, status string) ([]*dto.ParticipantDTO, error) {
	args := m.Called(ctx, actor, campaignID, status)
	res, _ := args.Get(0).([]*dto.ParticipantDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) Report(ctx context.Context, actor service.Actor, campaignID string) (*dto.CampaignReportDTO, error) {
	args := m.Called(ctx, actor, campaignID)
	res, _ := args.Get(0).(*dto.CampaignReportDTO)
	return res, args.Error(1)
}

func (m *mockCampaignService) ExportReport(ctx context.Context, actor service.Actor, campaignID string) (*dto.ReportExportDTO, error) {
	args := m.Called(ctx, actor, campaignID)
	res, _ := args.Get(0).(*dto.ReportExportDTO)
	return res, args.Error(1)
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) SubmitPost(ctx context.Context, actor service.Actor, campaignID string, req *dto.SubmitPostReq) (*dto.PostDTO, error) {
	args := m.Called(ctx, actor, campaignID, req)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) GetPost(ctx context.Context, actor service.Actor, id string) (*dto.PostDTO, error) {
	args := m.Called(ctx, actor, id)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) ListCampaignPosts(ctx context.Context, actor service.Actor, campaignID string) ([]*dto.PostDTO, error) {
	args := m.Called(ctx, actor, campaignID)
	res, _ := args.Get(0).([]*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockPostService) ReviewPost(ctx context.Context, id string, req *dto.ReviewPostReq) (*dto.PostDTO, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

type mockMetricsService struct {
	mock.Mock
}

func (m *mockMetricsService) IngestMetrics(ctx context.Context, postID string, snapshot scoring.MetricsSnapshot, fetchedAt time.Time) (*dto.PostDTO, error) {
	args := m.Called(ctx, postID, snapshot, fetchedAt)
	res, _ := args.Get(0).(*dto.PostDTO)
	return res, args.Error(1)
}

func (m *mockMetricsService) RescoreDirty(ctx context.Context) (*service.RescoreOutcome, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*service.RescoreOutcome)
	return res, args.Error(1)
}

type mockScoringService struct {
	mock.Mock
}

func (m *mockScoringService) RecalculateOne(ctx context.Context, postID string) (*dto.RecalcResultDTO, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).(*dto.RecalcResultDTO)
	return res, args.Error(1)
}

func (m *mockScoringService) RecalculateAllForCampaign(ctx context.Context, campaignID string, trigger string, operatorID uint64) (*dto.RecalcSummaryDTO, error) {
	args := m.Called(ctx, campaignID, trigger, operatorID)
	res, _ := args.Get(0).(*dto.RecalcSummaryDTO)
	return res, args.Error(1)
}

func (m *mockScoringService) RecalculatePosts(ctx context.Context, postIDs []string) (*service.RescoreOutcome, error) {
	args := m.Called(ctx, postIDs)
	res, _ := args.Get(0).(*service.RescoreOutcome)
	return res, args.Error(1)
}

func (m *mockScoringService) ListScoreRuns(ctx context.Context, actor service.Actor, campaignID string, limit int64) ([]*dto.ScoreRunDTO, error) {
	args := m.Called(ctx, actor, campaignID, limit)
	res, _ := args.Get(0).([]*dto.ScoreRunDTO)
	return res, args.Error(1)
}

type mockLeaderboardService struct {
	mock.Mock
}

func (m *mockLeaderboardService) CampaignLeaderboard(ctx context.Context, campaignID string) (*dto.LeaderboardDTO, error) {
	args := m.Called(ctx, campaignID)
	res, _ := args.Get(0).(*dto.LeaderboardDTO)
	return res, args.Error(1)
}

func (m *mockLeaderboardService) PublicLeaderboard(ctx context.Context, campaignID string, limit *int, offset int) (*dto.LeaderboardDTO, error) {
	args := m.Called(ctx, campaignID, limit, offset)
	res, _ := args.Get(0).(*dto.LeaderboardDTO)
	return res, args.Error(1)
}
