package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/scoring"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) PutReport(ctx context.Context, campaignID string, generatedAt time.Time, data []byte) (string, error) {
	args := m.Called(ctx, campaignID, generatedAt, data)
	return args.String(0), args.Error(1)
}

func (m *mockReportStore) PresignReport(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func newCampaignService(f *fixture, store ReportStore) CampaignService {
	return NewCampaignService(f.campaigns, f.participants, f.posts, store)
}

func TestCreateCampaign(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCampaignService(f, nil)

	created, err := svc.CreateCampaign(ctx, brandActor, &dto.CreateCampaignReq{
		Name:         "Launch",
		Budget:       5000,
		ScoringRules: instagramRules(),
	})
	require.NoError(t, err)
	assert.Equal(t, brandActor.UserID, created.BrandID)
	assert.Equal(t, consts.CampaignStatusDraft, created.Status)
	assert.Equal(t, instagramRules(), created.ScoringRules)

	byAdmin, err := svc.CreateCampaign(ctx, adminActor, &dto.CreateCampaignReq{Name: "Managed", BrandID: 42})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), byAdmin.BrandID)
}

func TestCreateCampaign_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newCampaignService(f, nil)
	start := time.Now()
	end := start.Add(-time.Hour)

	_, err := svc.CreateCampaign(ctx, brandActor, &dto.CreateCampaignReq{
		Name: "bad rules",
		ScoringRules: scoring.ScoringRules{
			PerPlatform: map[scoring.Platform]scoring.PlatformWeights{scoring.PlatformTikTok: {LikesPoint: -1}},
		},
	})
	assert.ErrorIs(t, err, scoring.ErrInvalidScoringRules)

	_, err = svc.CreateCampaign(ctx, brandActor, &dto.CreateCampaignReq{Name: "bad window", StartsAt: &start, EndsAt: &end})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.CreateCampaign(ctx, adminActor, &dto.CreateCampaignReq{Name: "no brand"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdateScoringRules_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, brandActor.UserID, consts.CampaignStatusActive)
	svc := newCampaignService(f, nil)
	rules := scoring.ScoringRules{
		PerPlatform: map[scoring.Platform]scoring.PlatformWeights{scoring.PlatformYouTube: {ViewsPoint: 0.002}},
	}

	_, err := svc.UpdateScoringRules(ctx, Actor{UserID: 999, Roles: []string{consts.RoleBrand}}, c.ID, rules)
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := svc.UpdateScoringRules(ctx, brandActor, c.ID, rules)
	require.NoError(t, err)
	assert.Equal(t, rules, updated.ScoringRules)

	stored, err := f.campaigns.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, rules, stored.ScoringRules)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, brandActor.UserID, consts.CampaignStatusDraft)
	svc := newCampaignService(f, nil)

	_, err := svc.UpdateStatus(ctx, brandActor, c.ID, consts.CampaignStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	res, err := svc.UpdateStatus(ctx, brandActor, c.ID, consts.CampaignStatusActive)
	require.NoError(t, err)
	assert.Equal(t, consts.CampaignStatusActive, res.Status)

	res, err = svc.UpdateStatus(ctx, adminActor, c.ID, consts.CampaignStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, consts.CampaignStatusCompleted, res.Status)

	_, err = svc.UpdateStatus(ctx, adminActor, c.ID, consts.CampaignStatusActive)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestListCampaigns_BrandScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.campaign(t, brandActor.UserID, consts.CampaignStatusDraft)
	f.campaign(t, 555, consts.CampaignStatusDraft)
	svc := newCampaignService(f, nil)

	mine, err := svc.ListCampaigns(ctx, brandActor, &dto.ListCampaignsReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.Total)
	assert.Equal(t, 1, mine.Page)
	assert.Equal(t, defaultPageSize, mine.PageSize)

	all, err := svc.ListCampaigns(ctx, adminActor, &dto.ListCampaignsReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
}

func TestParticipants_ApplyAndReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, brandActor.UserID, consts.CampaignStatusActive)
	svc := newCampaignService(f, nil)

	applied, err := svc.ApplyParticipant(ctx, influencerActor(7), c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ParticipantStatusPending, applied.Status)

	_, err = svc.ApplyParticipant(ctx, influencerActor(7), c.ID)
	assert.ErrorIs(t, err, ErrParticipantExists)

	_, err = svc.ReviewParticipant(ctx, brandActor, c.ID, 8, consts.ParticipantStatusApproved)
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	reviewed, err := svc.ReviewParticipant(ctx, brandActor, c.ID, 7, consts.ParticipantStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, consts.ParticipantStatusApproved, reviewed.Status)

	list, err := svc.ListParticipants(ctx, brandActor, c.ID, consts.ParticipantStatusApproved)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	done := f.campaign(t, brandActor.UserID, consts.CampaignStatusCompleted)
	_, err = svc.ApplyParticipant(ctx, influencerActor(7), done.ID)
	assert.ErrorIs(t, err, ErrCampaignNotActive)
}

func scoredFixture(t *testing.T) (*fixture, string) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, brandActor.UserID, consts.CampaignStatusActive)
	f.approve(t, c.ID, 7)
	f.approve(t, c.ID, 8)
	f.post(t, c.ID, 7, true, metrics(1000, 50, 10))
	f.post(t, c.ID, 8, true, metrics(500, 0, 0))
	f.post(t, c.ID, 8, false, metrics(9000, 0, 0))
	f.post(t, c.ID, 9, true, nil)

	scoringSvc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})
	_, err := scoringSvc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)
	require.NoError(t, err)
	return f, c.ID
}

func TestReport(t *testing.T) {
	f, campaignID := scoredFixture(t)
	svc := newCampaignService(f, nil)

	report, err := svc.Report(context.Background(), brandActor, campaignID)

	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalPosts)
	assert.Equal(t, 3, report.ValidPosts)
	assert.Equal(t, 3, report.ScoredPosts)
	assert.Equal(t, 3, report.PostsWithMetrics)
	assert.Equal(t, int64(10500), report.Engagement.Likes)
	assert.Equal(t, 18.5, report.TotalScore)
	assert.Equal(t, 9.25, report.AverageScore)
	assert.Equal(t, 13.5, report.TopScore)
	assert.Equal(t, map[string]int64{consts.ParticipantStatusApproved: 2}, report.Participants)
	require.Len(t, report.TopInfluencers, 2)
	assert.Equal(t, uint64(7), report.TopInfluencers[0].InfluencerID)
}

func TestExportReport(t *testing.T) {
	f, campaignID := scoredFixture(t)
	store := &mockReportStore{}
	svc := newCampaignService(f, store)

	store.On("PutReport", mock.Anything, campaignID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(data []byte) bool {
		var report dto.CampaignReportDTO
		return json.Unmarshal(data, &report) == nil && report.CampaignID == campaignID
	})).Return("reports/"+campaignID+"/x.json", nil)
	store.On("PresignReport", mock.Anything, "reports/"+campaignID+"/x.json", reportLinkExpiry).
		Return("https://minio.local/reports/x.json?sig=1", nil)

	res, err := svc.ExportReport(context.Background(), brandActor, campaignID)

	require.NoError(t, err)
	assert.Equal(t, "reports/"+campaignID+"/x.json", res.Key)
	assert.Equal(t, "https://minio.local/reports/x.json?sig=1", res.DownloadURL)
	store.AssertExpectations(t)
}
