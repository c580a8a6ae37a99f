package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
	log "log/slog"
	"time"
)

// DirtyQueue 待重算帖子集合
type DirtyQueue interface {
	Mark(ctx context.Context, members ...string) error
	Drain(ctx context.Context) ([]string, error)
	Ack(ctx context.Context) error
}

type MetricsService interface {
	IngestMetrics(ctx context.Context, postID string, snapshot scoring.MetricsSnapshot, fetchedAt time.Time) (*dto.PostDTO, error)
	RescoreDirty(ctx context.Context) (*RescoreOutcome, error)
}

type MetricsServiceImpl struct {
	postRepo   repository.PostRepo
	scoringSvc ScoringService
	dirty      DirtyQueue
}

func NewMetricsService(postRepo repository.PostRepo, scoringSvc ScoringService, dirty DirtyQueue) MetricsService {
	return &MetricsServiceImpl{postRepo: postRepo, scoringSvc: scoringSvc, dirty: dirty}
}

// IngestMetrics 整体替换帖子的指标快照并标记待重算，早于已有快照的数据被忽略
func (s *MetricsServiceImpl) IngestMetrics(ctx context.Context, postID string, snapshot scoring.MetricsSnapshot, fetchedAt time.Time) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	if post.MetricsFetchedAt != nil && fetchedAt.Before(*post.MetricsFetchedAt) {
		log.InfoContext(ctx, "stale metrics ignored",
			"post_id", postID, "fetched_at", fetchedAt, "current", *post.MetricsFetchedAt)
		return toPostDTO(post), nil
	}

	snapshot = snapshot.Normalize()
	if err = s.postRepo.UpdateMetrics(ctx, postID, &snapshot, fetchedAt); err != nil {
		return nil, err
	}
	if err = s.dirty.Mark(ctx, postID); err != nil {
		return nil, err
	}

	post.Metrics = &snapshot
	post.MetricsFetchedAt = &fetchedAt
	return toPostDTO(post), nil
}

// RescoreDirty 取出全部待重算帖子，需重试的帖子放回集合后才确认本轮取出。
// 重算整体出错时不确认，下一轮 Drain 会再次取出同一批帖子
func (s *MetricsServiceImpl) RescoreDirty(ctx context.Context) (*RescoreOutcome, error) {
	postIDs, err := s.dirty.Drain(ctx)
	if err != nil {
		return nil, err
	}
	if len(postIDs) == 0 {
		return &RescoreOutcome{Deferred: []string{}}, nil
	}

	outcome, err := s.scoringSvc.RecalculatePosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	bgCtx := context.WithoutCancel(ctx)
	if len(outcome.Deferred) > 0 {
		if err = s.dirty.Mark(bgCtx, outcome.Deferred...); err != nil {
			log.ErrorContext(ctx, "requeue deferred posts failed", "count", len(outcome.Deferred), "err", err)
			return outcome, err
		}
	}
	if err = s.dirty.Ack(bgCtx); err != nil {
		log.WarnContext(ctx, "ack dirty posts failed", "count", len(postIDs), "err", err)
		return outcome, err
	}
	return outcome, nil
}
