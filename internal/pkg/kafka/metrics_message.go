package kafka

import (
	"Campaigner/internal/scoring"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ErrInvalidMetricsMessage = errors.New("invalid post metrics message")

// PostMetricsMessage 社媒集成回传的帖子指标
type PostMetricsMessage struct {
	PostID    string                   `json:"post_id"`
	Metrics   *scoring.MetricsSnapshot `json:"metrics"`
	FetchedAt *time.Time               `json:"fetched_at"`
}

// DecodeMetricsMessage 解析并校验消息体，缺失的计数按 0 处理
func DecodeMetricsMessage(value []byte) (*PostMetricsMessage, error) {
	var msg PostMetricsMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return nil, errors.Wrap(ErrInvalidMetricsMessage, err.Error())
	}

	msg.PostID = strings.TrimSpace(msg.PostID)
	if msg.PostID == "" {
		return nil, errors.Wrap(ErrInvalidMetricsMessage, "post_id is required")
	}
	if msg.Metrics == nil {
		return nil, errors.Wrapf(ErrInvalidMetricsMessage, "metrics missing for post %s", msg.PostID)
	}
	return &msg, nil
}
