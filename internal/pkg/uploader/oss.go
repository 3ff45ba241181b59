package uploader

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"photofeed_client/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// AliyunOSSUploader 上传到 OSS，返回公网地址
type AliyunOSSUploader struct {
	client *oss.Client
	bucket *oss.Bucket
	config config.OSSConfig
	now    func() time.Time
}

func NewAliyunOSSUploader(cfg config.OSSConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		client: client,
		bucket: bucket,
		config: cfg,
		now:    time.Now,
	}, nil
}

func (u *AliyunOSSUploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := objectKey(u.now(), name)

	err := u.bucket.PutObject(key, bytes.NewReader(data),
		oss.ContentType(contentType),
		oss.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	// Note: Assuming bucket is public-read or using CDN.
	return publicURL(u.config, key), nil
}

// objectKey 生成唯一文件名: YYYYMMDD/uuid.ext
func objectKey(t time.Time, name string) string {
	return fmt.Sprintf("%s/%s%s", t.Format("20060102"), uuid.New().String(), filepath.Ext(name))
}

func publicURL(cfg config.OSSConfig, key string) string {
	return fmt.Sprintf("https://%s.%s/%s", cfg.BucketName, cfg.Endpoint, key)
}
