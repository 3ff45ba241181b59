package uploader

import (
	"context"
	"encoding/base64"
	"fmt"

	"photofeed_client/internal/pkg/config"
)

// Uploader 将已校验的图片转换为可直接用作图片地址的字符串
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// DataURLUploader 内联 data URL，不产生网络请求
type DataURLUploader struct{}

func (DataURLUploader) Upload(_ context.Context, _ string, contentType string, data []byte) (string, error) {
	return DataURL(contentType, data), nil
}

// DataURL 编码为 data:<mime>;base64,<payload>
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// New 按配置选择实现
func New(cfg config.Config) (Uploader, error) {
	switch cfg.Upload.Mode {
	case "", config.UploadModeInline:
		return DataURLUploader{}, nil
	case config.UploadModeOSS:
		return NewAliyunOSSUploader(cfg.OSS)
	default:
		return nil, fmt.Errorf("unknown upload mode %q", cfg.Upload.Mode)
	}
}
