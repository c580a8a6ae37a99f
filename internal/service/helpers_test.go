package service

import (
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/pkg/mongo"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Campaign{}, &model.CampaignParticipant{}, &model.Post{}))
	return db
}

type fixture struct {
	campaigns    repository.CampaignRepo
	participants repository.ParticipantRepo
	posts        repository.PostRepo
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	return &fixture{
		campaigns:    repository.NewCampaignRepo(db),
		participants: repository.NewParticipantRepo(db),
		posts:        repository.NewPostRepo(db),
	}
}

func instagramRules() scoring.ScoringRules {
	return scoring.ScoringRules{
		PerPlatform: map[scoring.Platform]scoring.PlatformWeights{
			scoring.PlatformInstagram: {LikesPoint: 0.01, CommentsPoint: 0.05, SharesPoint: 0.1, ViewsPoint: 0},
		},
		HashtagBonus: 10,
		MentionBonus: 5,
	}
}

func (f *fixture) campaign(t *testing.T, brandID uint64, status string) *model.Campaign {
	c := &model.Campaign{BrandID: brandID, Name: "campaign", Status: status, ScoringRules: instagramRules()}
	require.NoError(t, f.campaigns.CreateCampaign(context.Background(), c))
	return c
}

func (f *fixture) post(t *testing.T, campaignID string, influencerID uint64, valid bool, metrics *scoring.MetricsSnapshot) *model.Post {
	p := &model.Post{
		CampaignID:         campaignID,
		InfluencerID:       influencerID,
		Platform:           string(scoring.PlatformInstagram),
		PostURL:            "https://instagram.com/p/x",
		IsValidForCampaign: valid,
	}
	require.NoError(t, f.posts.CreatePost(context.Background(), p))
	if metrics != nil {
		require.NoError(t, f.posts.UpdateMetrics(context.Background(), p.ID, metrics, time.Now()))
		p.Metrics = metrics
	}
	return p
}

func (f *fixture) approve(t *testing.T, campaignID string, influencerID uint64) {
	ctx := context.Background()
	require.NoError(t, f.participants.CreateParticipant(ctx, &model.CampaignParticipant{
		CampaignID: campaignID, InfluencerID: influencerID, Status: consts.ParticipantStatusApproved,
	}))
}

func metrics(likes, comments, shares int64) *scoring.MetricsSnapshot {
	return &scoring.MetricsSnapshot{LikesCount: likes, CommentsCount: comments, SharesCount: shares}
}

type fakeLocker struct {
	mu   sync.Mutex
	busy map[string]bool
	held map[string]string
	// onAcquire 在成功加锁后调用，用于模拟等锁期间发生的并发写入
	onAcquire func(key string)
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{busy: map[string]bool{}, held: map[string]string{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, value string, _ time.Duration, _ int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy[key] {
		return false, nil
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = value
	if l.onAcquire != nil {
		l.mu.Unlock()
		l.onAcquire(key)
		l.mu.Lock()
	}
	return true, nil
}

func (l *fakeLocker) UnLock(_ context.Context, key string, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == value {
		delete(l.held, key)
	}
	return nil
}

func (l *fakeLocker) heldCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

type fakeScoreRuns struct {
	mu   sync.Mutex
	runs []*mongo.ScoreRunModel
}

func (r *fakeScoreRuns) Append(_ context.Context, run *mongo.ScoreRunModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *fakeScoreRuns) ListByCampaign(_ context.Context, campaignID string, limit int64) ([]*mongo.ScoreRunModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*mongo.ScoreRunModel, 0)
	for i := len(r.runs) - 1; i >= 0 && int64(len(result)) < limit; i-- {
		if r.runs[i].CampaignID == campaignID {
			result = append(result, r.runs[i])
		}
	}
	return result, nil
}

// fakeDirtyQueue 与 redis 实现一致：Drain 后成员留在 processing 中直到 Ack
type fakeDirtyQueue struct {
	mu         sync.Mutex
	members    map[string]struct{}
	processing map[string]struct{}
	acks       int
}

func newFakeDirtyQueue() *fakeDirtyQueue {
	return &fakeDirtyQueue{members: map[string]struct{}{}, processing: map[string]struct{}{}}
}

func (q *fakeDirtyQueue) Mark(_ context.Context, members ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, m := range members {
		q.members[m] = struct{}{}
	}
	return nil
}

func (q *fakeDirtyQueue) Drain(_ context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for m := range q.members {
		q.processing[m] = struct{}{}
	}
	q.members = map[string]struct{}{}
	return sortedKeys(q.processing), nil
}

func (q *fakeDirtyQueue) Ack(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processing = map[string]struct{}{}
	q.acks++
	return nil
}

// list 返回尚未取出的成员
func (q *fakeDirtyQueue) list() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return sortedKeys(q.members)
}

func (q *fakeDirtyQueue) unacked() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return sortedKeys(q.processing)
}

func sortedKeys(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for m := range set {
		result = append(result, m)
	}
	sort.Strings(result)
	return result
}

// faultyCampaignRepo 读取活动时固定返回错误
type faultyCampaignRepo struct {
	repository.CampaignRepo
	err error
}

func (r *faultyCampaignRepo) GetCampaign(context.Context, string) (*model.Campaign, error) {
	return nil, r.err
}

// faultyPostRepo 对指定帖子的写分操作注入失败
type faultyPostRepo struct {
	repository.PostRepo
	failIDs  map[string]bool
	panicIDs map[string]bool
	block    bool
}

func (r *faultyPostRepo) UpdateScore(ctx context.Context, id string, score float64) error {
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if r.panicIDs[id] {
		panic("corrupted row")
	}
	if r.failIDs[id] {
		return errors.New("disk full")
	}
	return r.PostRepo.UpdateScore(ctx, id, score)
}

var (
	adminActor = Actor{UserID: 1, Roles: []string{consts.RoleAdmin}}
	brandActor = Actor{UserID: 100, Roles: []string{consts.RoleBrand}}
)

func influencerActor(id uint64) Actor {
	return Actor{UserID: id, Roles: []string{consts.RoleInfluencer}}
}
