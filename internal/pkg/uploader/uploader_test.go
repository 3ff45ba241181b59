package uploader

import (
	"context"
	"regexp"
	"testing"
	"time"

	"photofeed_client/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURLUploader(t *testing.T) {
	url, err := DataURLUploader{}.Upload(context.Background(), "a.png", "image/png", []byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", url)
}

func TestNew(t *testing.T) {
	t.Run("Inline by default", func(t *testing.T) {
		u, err := New(config.Default())
		require.NoError(t, err)
		assert.IsType(t, DataURLUploader{}, u)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		cfg := config.Default()
		cfg.Upload.Mode = "ftp"

		_, err := New(cfg)
		assert.Error(t, err)
	})
}

func TestObjectKey(t *testing.T) {
	key := objectKey(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), "sunset.JPG")

	assert.Regexp(t, regexp.MustCompile(`^20261016/[0-9a-f-]{36}\.JPG$`), key)
	assert.NotEqual(t, key, objectKey(time.Now(), "sunset.JPG"))
}

func TestPublicURL(t *testing.T) {
	cfg := config.OSSConfig{Endpoint: "oss-cn-hangzhou.aliyuncs.com", BucketName: "photos"}

	assert.Equal(t, "https://photos.oss-cn-hangzhou.aliyuncs.com/20261016/x.png", publicURL(cfg, "20261016/x.png"))
}
