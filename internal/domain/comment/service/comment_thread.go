package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"photofeed_client/internal/domain/comment/model"
	"photofeed_client/internal/domain/comment/repository"
	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrEmptyComment   = errors.New("comment content is empty")
	ErrCommentTooLong = errors.New("comment content is too long")
)

// DefaultCommentMaxLength 评论最大字数
const DefaultCommentMaxLength = 500

// CommentThread 帖子详情页的评论列表
type CommentThread struct {
	repo      repository.CommentRepository
	postID    string
	maxLength int

	mu       sync.RWMutex
	comments []model.Comment
	loading  bool
	err      error
	hasMore  bool
	page     int
	limit    int
}

// NewCommentThread maxLength <= 0 时使用默认值 500
func NewCommentThread(repo repository.CommentRepository, postID string, maxLength int) *CommentThread {
	if maxLength <= 0 {
		maxLength = DefaultCommentMaxLength
	}
	return &CommentThread{
		repo:      repo,
		postID:    postID,
		maxLength: maxLength,
		hasMore:   true,
		page:      utils.DefaultPage,
	}
}

func (t *CommentThread) PostID() string { return t.postID }

// SetPageSize 设置每页条数，0 表示 utils.DefaultLimit
func (t *CommentThread) SetPageSize(limit int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limit = limit
}

// Load 重新加载第一页
func (t *CommentThread) Load(ctx context.Context) error {
	return t.load(ctx, utils.DefaultPage, true)
}

// LoadMore 加载下一页并追加
func (t *CommentThread) LoadMore(ctx context.Context) error {
	t.mu.RLock()
	page := t.page
	t.mu.RUnlock()
	return t.load(ctx, page, false)
}

func (t *CommentThread) load(ctx context.Context, page int, replace bool) error {
	t.mu.Lock()
	t.loading = true
	t.err = nil
	limit := t.limit
	t.mu.Unlock()

	resp, err := t.repo.GetComments(ctx, t.postID, utils.Pagination{Page: page, Limit: limit})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.err = err
		logger.Log.Warn("load comments failed",
			zap.String("post_id", t.postID), zap.Int("page", page), zap.Error(err))
		return err
	}

	if replace {
		t.comments = append([]model.Comment(nil), resp.Data...)
	} else {
		t.comments = append(t.comments, resp.Data...)
	}
	t.hasMore = len(resp.Data) > 0
	t.page = page + 1
	return nil
}

// Submit 发表评论，成功后插到最前
func (t *CommentThread) Submit(ctx context.Context, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > t.maxLength {
		return nil, ErrCommentTooLong
	}

	resp, err := t.repo.CreateComment(ctx, t.postID, content)
	if err != nil {
		t.setErr(err)
		return nil, err
	}

	t.mu.Lock()
	t.err = nil
	t.comments = append([]model.Comment{resp.Data}, t.comments...)
	t.mu.Unlock()

	created := resp.Data.Clone()
	return &created, nil
}

// Delete 删除评论或回复
func (t *CommentThread) Delete(ctx context.Context, commentID string) error {
	if _, err := t.repo.DeleteComment(ctx, t.postID, commentID); err != nil {
		t.setErr(err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.comments {
		if t.comments[i].ID == commentID {
			t.comments = append(t.comments[:i:i], t.comments[i+1:]...)
			return nil
		}
		replies := t.comments[i].Replies
		for j := range replies {
			if replies[j].ID == commentID {
				t.comments[i].Replies = append(replies[:j:j], replies[j+1:]...)
				return nil
			}
		}
	}
	return nil
}

// ToggleLike 切换点赞，计数按服务端返回的状态加减一
func (t *CommentThread) ToggleLike(ctx context.Context, commentID string) error {
	resp, err := t.repo.ToggleCommentLike(ctx, t.postID, commentID)
	if err != nil {
		t.setErr(err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c := t.find(commentID); c != nil {
		c.IsLiked = resp.Data.Liked
		if resp.Data.Liked {
			c.Likes++
		} else {
			c.Likes--
		}
	}
	return nil
}

// find 需持有写锁
func (t *CommentThread) find(id string) *model.Comment {
	for i := range t.comments {
		if t.comments[i].ID == id {
			return &t.comments[i]
		}
		for j := range t.comments[i].Replies {
			if t.comments[i].Replies[j].ID == id {
				return &t.comments[i].Replies[j]
			}
		}
	}
	return nil
}

func (t *CommentThread) setErr(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	logger.Log.Warn("comment operation failed", zap.String("post_id", t.postID), zap.Error(err))
}

// Comments 返回副本
func (t *CommentThread) Comments() []model.Comment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Comment, len(t.comments))
	for i, c := range t.comments {
		out[i] = c.Clone()
	}
	return out
}

func (t *CommentThread) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

func (t *CommentThread) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *CommentThread) HasMore() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasMore
}
