package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScoreRunRepo interface {
	Append(ctx context.Context, run *ScoreRunModel) error
	ListByCampaign(ctx context.Context, campaignID string, limit int64) ([]*ScoreRunModel, error)
}

type scoreRunRepoImpl struct {
	col *mongo.Collection
}

func NewScoreRunRepo(db *mongo.Database) ScoreRunRepo {
	return &scoreRunRepoImpl{
		col: db.Collection(scoreRunCollection),
	}
}

func ensureScoreRunIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(scoreRunCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "started_at", Value: -1}},
	})
	return err
}

// Append 写入一条审计记录
func (s *scoreRunRepoImpl) Append(ctx context.Context, run *ScoreRunModel) error {
	if run.FailedPostIDs == nil {
		run.FailedPostIDs = []string{}
	}
	_, err := s.col.InsertOne(ctx, run)
	return err
}

// ListByCampaign 按开始时间倒序返回最近的记录
func (s *scoreRunRepoImpl) ListByCampaign(ctx context.Context, campaignID string, limit int64) ([]*ScoreRunModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"campaign_id": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*ScoreRunModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
