package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxRetryWait = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 不同 key 的消息并发处理，同一 key 内保持分区顺序
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	groups := make(map[string][]*sarama.ConsumerMessage)
	order := make([]string, 0)
	for _, msg := range messages {
		key := string(msg.Key)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], msg)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		wg.Add(1)
		go func(msgs []*sarama.ConsumerMessage) {
			defer wg.Done()
			for _, m := range msgs {
				if !runWithRetry(session.Context(), m, logic) {
					return
				}
			}
		}(groups[key])
	}
	wg.Wait()

	if session.Context().Err() != nil {
		return
	}
	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}

// runWithRetry 失败后指数退避重试，会话结束时返回 false
func runWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	retryInterval := 100 * time.Millisecond
	for {
		err := logic(ctx, m)
		if err == nil {
			return true
		}

		log.ErrorContext(ctx, "process message error",
			"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > maxRetryWait {
			retryInterval = maxRetryWait
		}
	}
}
