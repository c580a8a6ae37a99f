package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringService(f *fixture, postRepo repository.PostRepo, locker Locker, runs *fakeScoreRuns) ScoringService {
	return NewScoringService(f.campaigns, postRepo, runs, locker, ScoringOptions{
		RecalcTimeout: time.Minute,
		LockTTL:       time.Minute,
	})
}

func TestRecalculateOne_Updated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 7, true, metrics(1000, 50, 10))
	locker := newFakeLocker()
	svc := newScoringService(f, f.posts, locker, &fakeScoreRuns{})

	res, err := svc.RecalculateOne(ctx, p.ID)

	require.NoError(t, err)
	assert.Equal(t, dto.RecalcUpdated, res.Status)
	require.NotNil(t, res.Score)
	assert.InDelta(t, 13.5, *res.Score, 1e-9)

	stored, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 13.5, *stored.Score, 1e-9)
	assert.Zero(t, locker.heldCount())
}

func TestRecalculateOne_SkipsWithoutMetrics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 7, true, nil)
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	res, err := svc.RecalculateOne(ctx, p.ID)

	require.NoError(t, err)
	assert.Equal(t, dto.RecalcSkipped, res.Status)
	assert.Nil(t, res.Score)

	stored, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Score)
}

func TestRecalculateOne_NotFound(t *testing.T) {
	f := newFixture(t)
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	_, err := svc.RecalculateOne(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRecalculateOne_LockBusy(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 7, true, metrics(1, 1, 1))
	locker := newFakeLocker()
	locker.busy[consts.CampaignScoreLock+c.ID] = true
	svc := newScoringService(f, f.posts, locker, &fakeScoreRuns{})

	_, err := svc.RecalculateOne(context.Background(), p.ID)

	assert.ErrorIs(t, err, ErrRecalcInProgress)
}

func TestRecalculateAll_CountsAndAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	f.post(t, c.ID, 7, true, metrics(1000, 50, 10))
	f.post(t, c.ID, 7, false, metrics(100, 0, 0))
	f.post(t, c.ID, 8, true, nil)
	other := f.campaign(t, 100, consts.CampaignStatusActive)
	f.post(t, other.ID, 9, true, metrics(5, 5, 5))
	runs := &fakeScoreRuns{}
	svc := newScoringService(f, f.posts, newFakeLocker(), runs)

	summary, err := svc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.UpdatedCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.False(t, summary.TimedOut)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, c.ID, runs.runs[0].CampaignID)
	assert.Equal(t, consts.ScoreTriggerManual, runs.runs[0].Trigger)
	assert.Equal(t, uint64(1), runs.runs[0].OperatorID)
	assert.Empty(t, runs.runs[0].FailedPostIDs)

	untouched, err := f.posts.ListByCampaign(ctx, other.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched[0].Score)
}

func TestRecalculateAll_EmptyCampaign(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusDraft)
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	summary, err := svc.RecalculateAllForCampaign(context.Background(), c.ID, consts.ScoreTriggerManual, 1)

	require.NoError(t, err)
	assert.Zero(t, summary.UpdatedCount)
	assert.Zero(t, summary.SkippedCount)
}

func TestRecalculateAll_CampaignNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	_, err := svc.RecalculateAllForCampaign(context.Background(), "missing", consts.ScoreTriggerManual, 1)

	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestRecalculateAll_IsolatesFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	ok1 := f.post(t, c.ID, 1, true, metrics(100, 0, 0))
	broken := f.post(t, c.ID, 2, true, metrics(100, 0, 0))
	panicky := f.post(t, c.ID, 3, true, metrics(100, 0, 0))
	ok2 := f.post(t, c.ID, 4, true, metrics(200, 0, 0))

	repo := &faultyPostRepo{
		PostRepo: f.posts,
		failIDs:  map[string]bool{broken.ID: true},
		panicIDs: map[string]bool{panicky.ID: true},
	}
	runs := &fakeScoreRuns{}
	svc := newScoringService(f, repo, newFakeLocker(), runs)

	summary, err := svc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.UpdatedCount)
	assert.Equal(t, 2, summary.SkippedCount)
	assert.Equal(t, 4, summary.UpdatedCount+summary.SkippedCount)
	require.Len(t, runs.runs, 1)
	assert.ElementsMatch(t, []string{broken.ID, panicky.ID}, runs.runs[0].FailedPostIDs)

	for _, id := range []string{ok1.ID, ok2.ID} {
		p, err := f.posts.GetPost(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, p.Score)
	}
}

func TestRecalculateAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 1, true, metrics(1000, 50, 10))
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	_, err := svc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)
	require.NoError(t, err)
	first, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)
	require.NoError(t, err)
	second, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, *first.Score, *second.Score)
}

func TestRecalculateAll_TimeoutCountsRemainingAsSkipped(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	for i := 0; i < 3; i++ {
		f.post(t, c.ID, uint64(i+1), true, metrics(10, 0, 0))
	}
	repo := &faultyPostRepo{PostRepo: f.posts, block: true}
	svc := NewScoringService(f.campaigns, repo, &fakeScoreRuns{}, newFakeLocker(), ScoringOptions{
		RecalcTimeout: 20 * time.Millisecond,
		LockTTL:       time.Minute,
	})

	summary, err := svc.RecalculateAllForCampaign(context.Background(), c.ID, consts.ScoreTriggerJob, 0)

	require.NoError(t, err)
	assert.True(t, summary.TimedOut)
	assert.Zero(t, summary.UpdatedCount)
	assert.Equal(t, 3, summary.SkippedCount)
}

func TestRecalculateAll_SerializedPerCampaign(t *testing.T) {
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	for i := 0; i < 5; i++ {
		f.post(t, c.ID, uint64(i+1), true, metrics(10, 1, 1))
	}
	svc := newScoringService(f, f.posts, newFakeLocker(), &fakeScoreRuns{})

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecalculateAllForCampaign(context.Background(), c.ID, consts.ScoreTriggerManual, 1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestRecalculatePosts_DefersBusyCampaign(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	free := f.campaign(t, 100, consts.CampaignStatusActive)
	busy := f.campaign(t, 100, consts.CampaignStatusActive)
	p1 := f.post(t, free.ID, 1, true, metrics(100, 0, 0))
	p2 := f.post(t, free.ID, 2, true, nil)
	p3 := f.post(t, busy.ID, 3, true, metrics(100, 0, 0))

	locker := newFakeLocker()
	locker.busy[consts.CampaignScoreLock+busy.ID] = true
	runs := &fakeScoreRuns{}
	svc := newScoringService(f, f.posts, locker, runs)

	outcome, err := svc.RecalculatePosts(ctx, []string{p1.ID, p2.ID, p3.ID, "gone"})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Equal(t, []string{p3.ID}, outcome.Deferred)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, consts.ScoreTriggerJob, runs.runs[0].Trigger)
}

func TestRecalculatePosts_DefersFailedWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	ok := f.post(t, c.ID, 1, true, metrics(100, 0, 0))
	broken := f.post(t, c.ID, 2, true, metrics(100, 0, 0))

	repo := &faultyPostRepo{PostRepo: f.posts, failIDs: map[string]bool{broken.ID: true}}
	runs := &fakeScoreRuns{}
	svc := newScoringService(f, repo, newFakeLocker(), runs)

	outcome, err := svc.RecalculatePosts(ctx, []string{ok.ID, broken.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Equal(t, []string{broken.ID}, outcome.Deferred)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, []string{broken.ID}, runs.runs[0].FailedPostIDs)
}

// 等锁期间写入的新指标必须参与本轮计分
func TestRecalculatePosts_ScoresMetricsWrittenWhileWaitingForLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 1, true, metrics(100, 0, 0))

	locker := newFakeLocker()
	locker.onAcquire = func(string) {
		require.NoError(t, f.posts.UpdateMetrics(ctx, p.ID, metrics(1000, 50, 10), time.Now()))
	}
	svc := newScoringService(f, f.posts, locker, &fakeScoreRuns{})

	outcome, err := svc.RecalculatePosts(ctx, []string{p.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)

	stored, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.InDelta(t, 13.5, *stored.Score, 1e-9)
}

func TestRecalculatePosts_DefersOnCampaignReadError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, 100, consts.CampaignStatusActive)
	p := f.post(t, c.ID, 1, true, metrics(100, 0, 0))

	campaigns := &faultyCampaignRepo{CampaignRepo: f.campaigns, err: errors.New("connection reset")}
	runs := &fakeScoreRuns{}
	locker := newFakeLocker()
	svc := NewScoringService(campaigns, f.posts, runs, locker, ScoringOptions{LockTTL: time.Minute})

	outcome, err := svc.RecalculatePosts(ctx, []string{p.ID})

	require.NoError(t, err)
	assert.Zero(t, outcome.Updated)
	assert.Zero(t, outcome.Skipped)
	assert.Equal(t, []string{p.ID}, outcome.Deferred)
	assert.Empty(t, runs.runs)
	assert.Zero(t, locker.heldCount())
}

func TestListScoreRuns_RequiresManager(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.campaign(t, brandActor.UserID, consts.CampaignStatusActive)
	runs := &fakeScoreRuns{}
	svc := newScoringService(f, f.posts, newFakeLocker(), runs)
	_, err := svc.RecalculateAllForCampaign(ctx, c.ID, consts.ScoreTriggerManual, 1)
	require.NoError(t, err)

	list, err := svc.ListScoreRuns(ctx, brandActor, c.ID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListScoreRuns(ctx, Actor{UserID: 555, Roles: []string{consts.RoleBrand}}, c.ID, 0)
	assert.ErrorIs(t, err, UnauthorizedError)
}
