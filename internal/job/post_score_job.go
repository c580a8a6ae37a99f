package job

import (
	"Campaigner/internal/pkg/logger"
	"Campaigner/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PostScoreJob 定时重算指标发生变化的帖子
type PostScoreJob struct {
	metricsSvc service.MetricsService
	timeout    time.Duration
}

func NewPostScoreJob(metricsSvc service.MetricsService, timeout time.Duration) *PostScoreJob {
	return &PostScoreJob{
		metricsSvc: metricsSvc,
		timeout:    timeout,
	}
}

func (s *PostScoreJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-score-"+uuid.NewString())
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	outcome, err := s.metricsSvc.RescoreDirty(ctx)
	if err != nil {
		log.ErrorContext(ctx, "rescore dirty posts error", "err", err)
		return
	}
	if outcome.Updated == 0 && outcome.Skipped == 0 && len(outcome.Deferred) == 0 {
		return
	}

	log.InfoContext(ctx, "rescore dirty posts success",
		"updated", outcome.Updated,
		"skipped", outcome.Skipped,
		"deferred", len(outcome.Deferred))
}
