package wire

import (
	"Campaigner/internal/api"
	"Campaigner/internal/api/config"
	"Campaigner/internal/api/handler"
	"Campaigner/internal/job"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/pkg/cron"
	"Campaigner/internal/pkg/kafka"
	pkgminio "Campaigner/internal/pkg/minio"
	pkgmongo "Campaigner/internal/pkg/mongo"
	pkgredis "Campaigner/internal/pkg/redis"
	"Campaigner/internal/pkg/security"
	"Campaigner/internal/repository"
	"Campaigner/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // kafka_metrics_consumer.enable 为 false 时为 nil
}

// Infra 外部依赖的连接
type Infra struct {
	DB    *gorm.DB
	Redis redis.Cmdable
	Mongo *mongo.Database
	MinIO *minio.Client
}

func BuildApplication(infra Infra, cfg *config.Config) (*ApplicationContainer, error) {
	campaignRepo := repository.NewCampaignRepo(infra.DB)
	participantRepo := repository.NewParticipantRepo(infra.DB)
	postRepo := repository.NewPostRepo(infra.DB)
	scoreRunRepo := pkgmongo.NewScoreRunRepo(infra.Mongo)

	locker := pkgredis.NewLocker(infra.Redis)
	dirty := pkgredis.NewDirtySet(infra.Redis, consts.PostScoreDirtyKey)
	reportStore := pkgminio.NewReportStore(infra.MinIO, cfg.MinIO.ReportBucket)

	scoringService := service.NewScoringService(campaignRepo, postRepo, scoreRunRepo, locker, service.ScoringOptions{
		RecalcTimeout: seconds(cfg.Scoring.RecalcTimeout),
		LockTTL:       seconds(cfg.Scoring.LockTTL),
		LockRetries:   cfg.Scoring.LockRetries,
	})
	leaderboardService := service.NewLeaderboardService(campaignRepo, postRepo, service.LeaderboardOptions{
		DefaultLimit: cfg.Scoring.PublicLeaderboardLimit,
		MaxLimit:     cfg.Scoring.MaxLeaderboardLimit,
	})
	metricsService := service.NewMetricsService(postRepo, scoringService, dirty)
	campaignService := service.NewCampaignService(campaignRepo, participantRepo, postRepo, reportStore)
	postService := service.NewPostService(campaignRepo, participantRepo, postRepo)

	handlers := &api.HandlersGroup{
		CampaignHandler:    handler.NewCampaignHandler(campaignService),
		ParticipantHandler: handler.NewParticipantHandler(campaignService),
		PostHandler:        handler.NewPostHandler(postService, metricsService),
		ScoringHandler:     handler.NewScoringHandler(scoringService),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService),
		Signer:             security.NewJWTSigner(cfg.JWT.Secret, cfg.JWT.Issuer),
		Revocation:         pkgredis.NewTokenBlacklist(infra.Redis, consts.TokenBlacklistKey),
	}

	router := api.SetupRouter(handlers)

	postScoreJob := job.NewPostScoreJob(metricsService, seconds(cfg.Scoring.RecalcTimeout))
	cronMgr := cron.NewCronManager(cfg.Cron.RescoreSpec, postScoreJob)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.KafkaMetricsConsumer.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, metricsService)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           infra.DB,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
