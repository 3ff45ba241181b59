package app

import (
	"context"
	"net/http"
	"testing"

	"photofeed_client/internal/domain/post/service"
	"photofeed_client/internal/pkg/config"

	"github.com/h2non/gock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.API.Host = "http://api.test"
	cfg.API.Headers = map[string]string{"Authorization": "Bearer t"}
	return cfg
}

func TestNew(t *testing.T) {
	t.Run("Wires stores against the resolved base url", func(t *testing.T) {
		defer gock.Off()
		gock.New("http://api.test").
			Get("/api/posts").
			MatchHeader("Authorization", "Bearer t").
			Reply(http.StatusOK).
			JSON(map[string]any{"status": 200, "data": []map[string]any{{"id": "p1", "title": "t"}}})

		a, err := New(testConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://api.test/api", a.Client.BaseURL())

		loaded, err := a.Feed.OnVisible(context.Background())
		require.NoError(t, err)
		assert.True(t, loaded)
		assert.Len(t, a.Posts.Posts(), 1)
		count, err := testutil.GatherAndCount(a.Registry, "photofeed_client_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.Upload.Mode = "ftp"

		_, err := New(cfg)

		assert.Error(t, err)
	})

	t.Run("Factories use configured limits", func(t *testing.T) {
		a, err := New(testConfig())
		require.NoError(t, err)

		composer := a.NewComposer()
		assert.Equal(t, service.StateEmpty, composer.State())

		thread := a.CommentThread("p1")
		assert.Equal(t, "p1", thread.PostID())
	})

	t.Run("Configured page size reaches the feed", func(t *testing.T) {
		defer gock.Off()
		gock.New("http://api.test").
			Get("/api/posts").
			MatchParam("limit", "^7$").
			Reply(http.StatusOK).
			JSON(map[string]any{"status": 200, "data": []map[string]any{}})

		cfg := testConfig()
		cfg.Pagination.DefaultLimit = 7
		a, err := New(cfg)
		require.NoError(t, err)

		require.NoError(t, a.Posts.LoadPosts(context.Background(), nil))
		assert.True(t, gock.IsDone())
	})
}

func TestSingleton(t *testing.T) {
	defer Shutdown()

	assert.Panics(t, func() { Default() })

	a, err := Init(testConfig())
	require.NoError(t, err)
	assert.Same(t, a, Default())

	_, err = Init(testConfig())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	Shutdown()
	assert.Panics(t, func() { Default() })

	b, err := Init(testConfig())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}
