package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/pkg/logger"
	"Campaigner/internal/pkg/mongo"
	"Campaigner/internal/pkg/util"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	defaultScoreRunLimit = 20
	maxScoreRunLimit     = 100
	auditTimeout         = 5 * time.Second
)

// Locker 跨实例的活动级互斥
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value string) error
}

type ScoringOptions struct {
	RecalcTimeout time.Duration
	LockTTL       time.Duration
	LockRetries   int
}

// RescoreOutcome 按帖子 ID 批量重算的结果，Deferred 为因活动被占用、读库出错或写分失败而需要重试的帖子
type RescoreOutcome struct {
	Updated  int
	Skipped  int
	Deferred []string
}

type ScoringService interface {
	RecalculateOne(ctx context.Context, postID string) (*dto.RecalcResultDTO, error)
	RecalculateAllForCampaign(ctx context.Context, campaignID string, trigger string, operatorID uint64) (*dto.RecalcSummaryDTO, error)
	RecalculatePosts(ctx context.Context, postIDs []string) (*RescoreOutcome, error)
	ListScoreRuns(ctx context.Context, actor Actor, campaignID string, limit int64) ([]*dto.ScoreRunDTO, error)
}

type ScoringServiceImpl struct {
	campaignRepo repository.CampaignRepo
	postRepo     repository.PostRepo
	scoreRunRepo mongo.ScoreRunRepo
	locker       Locker
	local        *util.KeyedMutex
	opts         ScoringOptions
}

func NewScoringService(
	campaignRepo repository.CampaignRepo,
	postRepo repository.PostRepo,
	scoreRunRepo mongo.ScoreRunRepo,
	locker Locker,
	opts ScoringOptions,
) ScoringService {
	return &ScoringServiceImpl{
		campaignRepo: campaignRepo,
		postRepo:     postRepo,
		scoreRunRepo: scoreRunRepo,
		locker:       locker,
		local:        util.NewKeyedMutex(),
		opts:         opts,
	}
}

// RecalculateOne 重算单个帖子，没有指标时返回 skipped 且不改动 score
func (s *ScoringServiceImpl) RecalculateOne(ctx context.Context, postID string) (*dto.RecalcResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	var result *dto.RecalcResultDTO
	err = s.withCampaignLock(ctx, post.CampaignID, func() error {
		campaign, err := s.campaignRepo.GetCampaign(ctx, post.CampaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return ErrCampaignNotFound
		}

		current, err := s.postRepo.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrPostNotFound
		}

		updated, err := s.scoreOne(ctx, current, campaign.ScoringRules)
		if err != nil {
			return err
		}

		result = &dto.RecalcResultDTO{PostID: current.ID, Status: dto.RecalcSkipped, Score: current.Score}
		if updated {
			result.Status = dto.RecalcUpdated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecalculateAllForCampaign 逐帖重算活动下全部帖子，单帖失败只计入 skipped
func (s *ScoringServiceImpl) RecalculateAllForCampaign(ctx context.Context, campaignID string, trigger string, operatorID uint64) (*dto.RecalcSummaryDTO, error) {
	startedAt := time.Now()
	summary := &dto.RecalcSummaryDTO{CampaignID: campaignID}
	failed := make([]string, 0)

	err := s.withCampaignLock(ctx, campaignID, func() error {
		campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return ErrCampaignNotFound
		}

		posts, err := s.postRepo.ListByCampaign(ctx, campaignID)
		if err != nil {
			return err
		}

		runCtx, cancel := s.runContext(ctx)
		defer cancel()

		for i, post := range posts {
			if runCtx.Err() != nil {
				summary.TimedOut = true
				summary.SkippedCount += len(posts) - i
				log.WarnContext(ctx, "campaign recalculation stopped early",
					"campaign_id", campaignID, "remaining", len(posts)-i, "err", runCtx.Err())
				break
			}

			updated, err := s.safeScore(runCtx, post, campaign.ScoringRules)
			switch {
			case err != nil:
				log.ErrorContext(ctx, "post recalculation failed", "post_id", post.ID, "campaign_id", campaignID, "err", err)
				failed = append(failed, post.ID)
				summary.SkippedCount++
			case updated:
				summary.UpdatedCount++
			default:
				summary.SkippedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "campaign recalculated",
		"campaign_id", campaignID,
		"trigger", trigger,
		"updated", summary.UpdatedCount,
		"skipped", summary.SkippedCount,
		"timed_out", summary.TimedOut,
	)
	s.audit(ctx, &mongo.ScoreRunModel{
		CampaignID:    campaignID,
		Trigger:       trigger,
		OperatorID:    operatorID,
		Updated:       summary.UpdatedCount,
		Skipped:       summary.SkippedCount,
		FailedPostIDs: failed,
		TimedOut:      summary.TimedOut,
		StartedAt:     startedAt,
		DurationMs:    time.Since(startedAt).Milliseconds(),
		TraceID:       logger.TraceID(ctx),
	})
	return summary, nil
}

// RecalculatePosts 按活动分组重算指定帖子，活动正被占用时放入 Deferred 由调用方稍后重试
func (s *ScoringServiceImpl) RecalculatePosts(ctx context.Context, postIDs []string) (*RescoreOutcome, error) {
	outcome := &RescoreOutcome{Deferred: make([]string, 0)}
	if len(postIDs) == 0 {
		return outcome, nil
	}

	posts, err := s.postRepo.GetPostByIds(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*model.Post)
	for _, post := range posts {
		groups[post.CampaignID] = append(groups[post.CampaignID], post)
	}
	campaignIDs := make([]string, 0, len(groups))
	for id := range groups {
		campaignIDs = append(campaignIDs, id)
	}
	sort.Strings(campaignIDs)

	for _, campaignID := range campaignIDs {
		group := groups[campaignID]
		startedAt := time.Now()
		updated, skipped := 0, 0
		failed := make([]string, 0)

		err = s.withCampaignLock(ctx, campaignID, func() error {
			campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
			if err != nil {
				return err
			}
			if campaign == nil {
				skipped += len(group)
				return nil
			}

			// 持锁后重新读取，避免用等锁期间已被覆盖的指标计分
			fresh, err := s.postRepo.GetPostByIds(ctx, postIDsOf(group))
			if err != nil {
				return err
			}
			skipped += len(group) - len(fresh)
			for _, post := range fresh {
				if post.CampaignID != campaignID {
					skipped++
					continue
				}
				ok, err := s.safeScore(ctx, post, campaign.ScoringRules)
				switch {
				case err != nil:
					log.ErrorContext(ctx, "post recalculation failed", "post_id", post.ID, "campaign_id", campaignID, "err", err)
					failed = append(failed, post.ID)
					skipped++
				case ok:
					updated++
				default:
					skipped++
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrRecalcInProgress) {
				log.WarnContext(ctx, "campaign busy, posts deferred", "campaign_id", campaignID, "posts", len(group))
			} else {
				log.ErrorContext(ctx, "campaign recalculation failed, posts deferred", "campaign_id", campaignID, "posts", len(group), "err", err)
			}
			outcome.Deferred = append(outcome.Deferred, postIDsOf(group)...)
			continue
		}

		// 写库失败的帖子留待下一轮重试
		outcome.Deferred = append(outcome.Deferred, failed...)
		outcome.Updated += updated
		outcome.Skipped += skipped
		s.audit(ctx, &mongo.ScoreRunModel{
			CampaignID:    campaignID,
			Trigger:       consts.ScoreTriggerJob,
			Updated:       updated,
			Skipped:       skipped,
			FailedPostIDs: failed,
			StartedAt:     startedAt,
			DurationMs:    time.Since(startedAt).Milliseconds(),
			TraceID:       logger.TraceID(ctx),
		})
	}
	return outcome, nil
}

func postIDsOf(posts []*model.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids
}

func (s *ScoringServiceImpl) ListScoreRuns(ctx context.Context, actor Actor, campaignID string, limit int64) ([]*dto.ScoreRunDTO, error) {
	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if !actor.canManage(campaign) {
		return nil, UnauthorizedError
	}

	if limit <= 0 {
		limit = defaultScoreRunLimit
	}
	if limit > maxScoreRunLimit {
		limit = maxScoreRunLimit
	}

	runs, err := s.scoreRunRepo.ListByCampaign(ctx, campaignID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ScoreRunDTO, 0, len(runs))
	for _, run := range runs {
		result = append(result, &dto.ScoreRunDTO{
			ID:            run.ID.Hex(),
			CampaignID:    run.CampaignID,
			Trigger:       run.Trigger,
			OperatorID:    run.OperatorID,
			Updated:       run.Updated,
			Skipped:       run.Skipped,
			FailedPostIDs: run.FailedPostIDs,
			TimedOut:      run.TimedOut,
			StartedAt:     run.StartedAt,
			DurationMs:    run.DurationMs,
			TraceID:       run.TraceID,
		})
	}
	return result, nil
}

// withCampaignLock 先占本进程内的活动锁，再抢 redis 锁
func (s *ScoringServiceImpl) withCampaignLock(ctx context.Context, campaignID string, fn func() error) error {
	unlock := s.local.Lock(campaignID)
	defer unlock()

	key := consts.CampaignScoreLock + campaignID
	token := uuid.NewString()
	ok, err := s.locker.TryLock(ctx, key, token, s.opts.LockTTL, s.opts.LockRetries)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecalcInProgress
	}
	defer func() {
		if err := s.locker.UnLock(context.WithoutCancel(ctx), key, token); err != nil {
			log.WarnContext(ctx, "release campaign score lock failed", "campaign_id", campaignID, "err", err)
		}
	}()

	return fn()
}

func (s *ScoringServiceImpl) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.RecalcTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.RecalcTimeout)
}

// scoreOne 返回 false 表示帖子缺少指标被跳过
func (s *ScoringServiceImpl) scoreOne(ctx context.Context, post *model.Post, rules scoring.ScoringRules) (bool, error) {
	if post.Metrics == nil {
		return false, nil
	}

	score := scoring.Calculate(*post.Metrics, rules, scoring.Platform(post.Platform))
	if err := s.postRepo.UpdateScore(ctx, post.ID, score); err != nil {
		return false, err
	}
	post.Score = &score
	return true, nil
}

func (s *ScoringServiceImpl) safeScore(ctx context.Context, post *model.Post, rules scoring.ScoringRules) (updated bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while scoring post %s: %v", post.ID, r)
		}
	}()
	return s.scoreOne(ctx, post, rules)
}

func (s *ScoringServiceImpl) audit(ctx context.Context, run *mongo.ScoreRunModel) {
	if s.scoreRunRepo == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.scoreRunRepo.Append(auditCtx, run); err != nil {
		log.WarnContext(ctx, "append score run failed", "campaign_id", run.CampaignID, "err", err)
	}
}
