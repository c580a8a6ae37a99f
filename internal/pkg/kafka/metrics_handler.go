package kafka

import (
	"Campaigner/internal/pkg/logger"
	"Campaigner/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PostMetricsHandler 消费 post-metrics，写入指标快照并标记待重算
type PostMetricsHandler struct {
	metricsSvc service.MetricsService
}

func NewPostMetricsHandler(metricsSvc service.MetricsService) *PostMetricsHandler {
	return &PostMetricsHandler{metricsSvc: metricsSvc}
}

func (s *PostMetricsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post metrics consumer setup")
	return nil
}

func (s *PostMetricsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post metrics consumer cleanup")
	return nil
}

func (s *PostMetricsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.handle)
}

// handle 格式错误或帖子不存在的消息直接丢弃，其余错误交给重试
func (s *PostMetricsHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = logger.WithTraceID(ctx, "kafka-"+uuid.NewString())

	message, err := DecodeMetricsMessage(msg.Value)
	if err != nil {
		log.WarnContext(ctx, "drop undecodable metrics message",
			"partition", msg.Partition, "offset", msg.Offset, "err", err)
		return nil
	}

	fetchedAt := msg.Timestamp
	if message.FetchedAt != nil {
		fetchedAt = *message.FetchedAt
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err = s.metricsSvc.IngestMetrics(ctx, message.PostID, *message.Metrics, fetchedAt)
	if errors.Is(err, service.ErrPostNotFound) {
		log.WarnContext(ctx, "metrics for unknown post dropped", "post_id", message.PostID)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "ingest metrics for post %s", message.PostID)
	}
	return nil
}
