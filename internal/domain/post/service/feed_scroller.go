package service

import (
	"context"
	"sync"

	"photofeed_client/pkg/utils"
)

// FeedLoader 信息流分页加载，通常是 *PostStore
type FeedLoader interface {
	LoadPosts(ctx context.Context, params *utils.Pagination) error
	HasMore() bool
}

// FeedScroller 无限滚动触发器
// 底部哨兵可见时加载下一页，上一次由它触发的加载未结束前忽略新的触发
type FeedScroller struct {
	feed FeedLoader

	mu      sync.Mutex
	loading bool
	err     error
}

func NewFeedScroller(feed FeedLoader) *FeedScroller {
	return &FeedScroller{feed: feed}
}

// OnVisible 哨兵进入视口时调用，返回是否真正发起了加载
func (s *FeedScroller) OnVisible(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.loading || !s.feed.HasMore() {
		s.mu.Unlock()
		return false, nil
	}
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	err := s.feed.LoadPosts(ctx, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
	return true, err
}

func (s *FeedScroller) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *FeedScroller) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
