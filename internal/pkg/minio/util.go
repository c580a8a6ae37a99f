package minio

import (
	"Campaigner/internal/pkg/consts"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

const reportPrefix = "reports/"

// ReportStore 活动报表导出存储
type ReportStore struct {
	client *minio.Client
	bucket string
}

func NewReportStore(client *minio.Client, bucket string) *ReportStore {
	return &ReportStore{client: client, bucket: bucket}
}

// ReportKey 报表对象名，按活动分目录
func ReportKey(campaignID string, at time.Time) string {
	return fmt.Sprintf("%s%s/%s.json", reportPrefix, campaignID, at.UTC().Format("20060102T150405Z"))
}

// PutReport 上传报表内容并返回对象名
func (s *ReportStore) PutReport(ctx context.Context, campaignID string, generatedAt time.Time, data []byte) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	info, err := s.client.PutObject(ctx, s.bucket, ReportKey(campaignID, generatedAt), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: consts.ReportContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return info.Key, nil
}

// PresignReport 生成临时下载地址
func (s *ReportStore) PresignReport(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign report: %w", err)
	}
	return u.String(), nil
}
