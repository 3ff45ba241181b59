package service

import (
	"context"
	"errors"
	"testing"

	"photofeed_client/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFeedLoader is a mock of FeedLoader
type MockFeedLoader struct {
	mock.Mock
	started chan struct{}
	release chan struct{}
}

func (m *MockFeedLoader) LoadPosts(ctx context.Context, params *utils.Pagination) error {
	args := m.Called(ctx, params)
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	return args.Error(0)
}

func (m *MockFeedLoader) HasMore() bool {
	return m.Called().Bool(0)
}

func TestFeedScroller(t *testing.T) {
	t.Run("Loads next page when visible", func(t *testing.T) {
		feed := new(MockFeedLoader)
		feed.On("HasMore").Return(true)
		feed.On("LoadPosts", mock.Anything, (*utils.Pagination)(nil)).Return(nil)
		s := NewFeedScroller(feed)

		loaded, err := s.OnVisible(ctx)

		require.NoError(t, err)
		assert.True(t, loaded)
		feed.AssertNumberOfCalls(t, "LoadPosts", 1)
	})

	t.Run("Stops when feed is exhausted", func(t *testing.T) {
		feed := new(MockFeedLoader)
		feed.On("HasMore").Return(false)
		s := NewFeedScroller(feed)

		loaded, err := s.OnVisible(ctx)

		require.NoError(t, err)
		assert.False(t, loaded)
		feed.AssertNotCalled(t, "LoadPosts", mock.Anything, mock.Anything)
	})

	t.Run("Ignores triggers while loading", func(t *testing.T) {
		feed := &MockFeedLoader{started: make(chan struct{}), release: make(chan struct{})}
		feed.On("HasMore").Return(true)
		feed.On("LoadPosts", mock.Anything, mock.Anything).Return(nil)
		s := NewFeedScroller(feed)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = s.OnVisible(ctx)
		}()
		<-feed.started

		assert.True(t, s.Loading())
		loaded, err := s.OnVisible(ctx)
		assert.NoError(t, err)
		assert.False(t, loaded)

		close(feed.release)
		<-done
		assert.False(t, s.Loading())
		feed.AssertNumberOfCalls(t, "LoadPosts", 1)
	})

	t.Run("Records failure", func(t *testing.T) {
		feed := new(MockFeedLoader)
		feed.On("HasMore").Return(true)
		feed.On("LoadPosts", mock.Anything, mock.Anything).Return(errors.New("offline"))
		s := NewFeedScroller(feed)

		loaded, err := s.OnVisible(ctx)

		assert.True(t, loaded)
		assert.EqualError(t, err, "offline")
		assert.EqualError(t, s.Err(), "offline")
	})
}
