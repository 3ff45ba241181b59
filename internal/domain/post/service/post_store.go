package service

import (
	"context"
	"sync"

	"photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/domain/post/repository"
	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/utils"

	"go.uber.org/zap"
)

// PostStore 进程内帖子缓存，是帖子列表的唯一数据源
// 所有修改都在服务端确认之后应用，读取方拿到的是副本
type PostStore struct {
	repo repository.PostRepository

	mu       sync.RWMutex
	posts    []model.Post
	loading  bool
	err      error
	selected *model.Post
	hasMore  bool
	page     int // 下一页游标，从 1 开始
	limit    int // 未指定 limit 时的每页条数，0 表示 utils.DefaultLimit
}

// NewPostStore 创建帖子 store
func NewPostStore(repo repository.PostRepository) *PostStore {
	return &PostStore{
		repo:    repo,
		hasMore: true,
		page:    utils.DefaultPage,
	}
}

// SetPageSize 设置默认每页条数
func (s *PostStore) SetPageSize(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = limit
}

// LoadPosts 加载一页帖子
// 显式请求第 1 页时替换列表，否则追加；无论请求哪一页，游标都加一
func (s *PostStore) LoadPosts(ctx context.Context, params *utils.Pagination) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	p := utils.Pagination{Page: s.page}
	if params != nil {
		if params.Page > 0 {
			p.Page = params.Page
		}
		p.Limit = params.Limit
	}
	if p.Limit <= 0 {
		p.Limit = s.limit
	}
	s.mu.Unlock()

	resp, err := s.repo.GetPosts(ctx, p.Normalize())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		logger.Log.Warn("load posts failed", zap.Int("page", p.Page), zap.Error(err))
		return err
	}

	if params != nil && params.Page == 1 {
		s.posts = append([]model.Post(nil), resp.Data...)
	} else {
		s.posts = append(s.posts, resp.Data...)
	}
	s.hasMore = len(resp.Data) > 0
	s.page++
	return nil
}

// AddPost 发布帖子，成功后将服务端返回的帖子插到最前
func (s *PostStore) AddPost(ctx context.Context, draft model.PostDraft) (*model.Post, error) {
	resp, err := s.repo.CreatePost(ctx, draft)
	if err != nil {
		return nil, err
	}

	created := resp.Data.Clone()
	s.mu.Lock()
	s.posts = append([]model.Post{created}, s.posts...)
	s.mu.Unlock()

	out := created.Clone()
	return &out, nil
}

// UpdatePost 更新帖子，服务端返回的字段合并到列表项与当前选中项
func (s *PostStore) UpdatePost(ctx context.Context, id string, patch model.PostPatch) error {
	resp, err := s.repo.UpdatePost(ctx, id, patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		merged, err := resp.Data.ApplyTo(s.posts[i])
		if err != nil {
			return err
		}
		s.posts[i] = merged
	}
	if s.selected != nil && s.selected.ID == id {
		merged, err := resp.Data.ApplyTo(*s.selected)
		if err != nil {
			return err
		}
		s.selected = &merged
	}
	return nil
}

// DeletePost 删除帖子，本地不存在也会请求服务端
func (s *PostStore) DeletePost(ctx context.Context, id string) error {
	if _, err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return nil
}

// ToggleLike 切换点赞
// 以服务端返回的状态为准，计数按返回值相对本地值加减一
func (s *PostStore) ToggleLike(ctx context.Context, id string) error {
	resp, err := s.repo.ToggleLike(ctx, id)
	if err != nil {
		return err
	}

	liked := resp.Data.Liked
	apply := func(p *model.Post) {
		p.IsLiked = liked
		if liked {
			p.Likes++
		} else {
			p.Likes--
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			apply(&s.posts[i])
		}
	}
	if s.selected != nil && s.selected.ID == id {
		apply(s.selected)
	}
	return nil
}

// ToggleSave 切换收藏
func (s *PostStore) ToggleSave(ctx context.Context, id string) error {
	resp, err := s.repo.ToggleSave(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].IsSaved = resp.Data.Saved
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected.IsSaved = resp.Data.Saved
	}
	return nil
}

// SetSelectedPost 设置详情页当前帖子，nil 表示关闭
func (s *PostStore) SetSelectedPost(p *model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.selected = nil
		return
	}
	c := p.Clone()
	s.selected = &c
}

// SelectedPost 当前选中帖子的副本
func (s *PostStore) SelectedPost() *model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	c := s.selected.Clone()
	return &c
}

// Posts 列表副本
func (s *PostStore) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

func (s *PostStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err 最近一次 LoadPosts 的错误
func (s *PostStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *PostStore) HasMore() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasMore
}

// NextPage 下一次无参 LoadPosts 将请求的页码
func (s *PostStore) NextPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}
