package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const scoreRunCollection = "score_runs"

// ScoreRunModel 一次批量重算的审计记录
type ScoreRunModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampaignID    string             `bson:"campaign_id" json:"campaign_id"`
	Trigger       string             `bson:"trigger" json:"trigger"` // manual, job
	OperatorID    uint64             `bson:"operator_id" json:"operator_id"`
	Updated       int                `bson:"updated" json:"updated"`
	Skipped       int                `bson:"skipped" json:"skipped"`
	FailedPostIDs []string           `bson:"failed_post_ids" json:"failed_post_ids"`
	TimedOut      bool               `bson:"timed_out" json:"timed_out"`
	StartedAt     time.Time          `bson:"started_at" json:"started_at"`
	DurationMs    int64              `bson:"duration_ms" json:"duration_ms"`
	TraceID       string             `bson:"trace_id" json:"trace_id"`
}
