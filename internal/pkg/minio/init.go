package minio

import (
	"Campaigner/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// Init 初始化 MinIO 客户端并确保报表桶存在
func Init(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.ReportBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.ReportBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.ReportBucket, err)
		}
		log.Info("MinIO report bucket created", "bucket", cfg.ReportBucket)
	}

	if cfg.ReportTTLDays > 0 {
		if err = ensureReportLifecycle(ctx, client, cfg.ReportBucket, cfg.ReportTTLDays); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// ensureReportLifecycle 导出的报表按天数自动过期
func ensureReportLifecycle(ctx context.Context, client *minio.Client, bucket string, days int) error {
	lcConfig, err := client.GetBucketLifecycle(ctx, bucket)
	if err != nil {
		lcConfig = lifecycle.NewConfiguration()
	}

	for _, rule := range lcConfig.Rules {
		if rule.Status == "Enabled" &&
			int(rule.Expiration.Days) == days &&
			rule.RuleFilter.Prefix == reportPrefix {
			return nil
		}
	}

	lcConfig.Rules = append(lcConfig.Rules, lifecycle.Rule{
		ID:         "ReportAutoExpire",
		Status:     "Enabled",
		RuleFilter: lifecycle.Filter{Prefix: reportPrefix},
		Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(days)},
	})
	if err = client.SetBucketLifecycle(ctx, bucket, lcConfig); err != nil {
		return fmt.Errorf("failed to set report lifecycle: %w", err)
	}
	log.Info("MinIO report lifecycle applied", "bucket", bucket, "days", days)
	return nil
}
