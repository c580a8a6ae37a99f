package kafka

import (
	"Campaigner/internal/api/config"
	"Campaigner/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	metricsTopic    string
	metricsConsumer sarama.ConsumerGroup
	metricsHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, metricsSvc service.MetricsService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	metricsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaMetricsConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		metricsTopic:    cfg.KafkaMetricsConsumer.Topic,
		metricsConsumer: metricsConsumer,
		metricsHandler:  NewPostMetricsHandler(metricsSvc),
	}, nil
}

// Start 启动所有消费者，ctx 结束后关闭
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.metricsConsumer.Errors() {
			log.Error("Error from metrics consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Post metrics consumer started", "topic", m.metricsTopic)
		for {
			if err := m.metricsConsumer.Consume(ctx, []string{m.metricsTopic}, m.metricsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.metricsConsumer.Close(); err != nil {
		log.Error("Failed to close metrics consumer", "err", err)
		return err
	}
	return nil
}
