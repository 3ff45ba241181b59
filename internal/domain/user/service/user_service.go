package service

import (
	"context"
	"sync"

	postModel "photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/domain/user/model"
	"photofeed_client/internal/domain/user/repository"
	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/utils"

	"go.uber.org/zap"
)

// ProfileService 当前用户资料与关注
type ProfileService struct {
	repo repository.UserRepository

	mu      sync.RWMutex
	profile *model.User
	err     error
}

// NewProfileService 创建资料服务
func NewProfileService(repo repository.UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Load 拉取当前用户资料
func (s *ProfileService) Load(ctx context.Context) (*model.User, error) {
	resp, err := s.repo.GetProfile(ctx)
	if err != nil {
		s.fail("load profile", err)
		return nil, err
	}
	return s.hold(resp.Data), nil
}

// Update 修改资料，持有的资料替换为服务端结果
func (s *ProfileService) Update(ctx context.Context, patch model.UserPatch) (*model.User, error) {
	resp, err := s.repo.UpdateProfile(ctx, patch)
	if err != nil {
		s.fail("update profile", err)
		return nil, err
	}
	return s.hold(resp.Data), nil
}

// ToggleFollow 切换关注，返回切换后的状态
func (s *ProfileService) ToggleFollow(ctx context.Context, userID string) (bool, error) {
	resp, err := s.repo.ToggleFollow(ctx, userID)
	if err != nil {
		s.fail("toggle follow", err)
		return false, err
	}

	s.mu.Lock()
	if s.profile != nil && s.profile.ID == userID {
		s.profile.IsFollowing = resp.Data.Following
	}
	s.mu.Unlock()
	return resp.Data.Following, nil
}

// UserPosts 某个用户发布的帖子
func (s *ProfileService) UserPosts(ctx context.Context, userID string, p utils.Pagination) ([]postModel.Post, error) {
	resp, err := s.repo.GetUserPosts(ctx, userID, p)
	if err != nil {
		s.fail("user posts", err)
		return nil, err
	}
	return resp.Data, nil
}

// SavedPosts 当前用户收藏的帖子
func (s *ProfileService) SavedPosts(ctx context.Context, p utils.Pagination) ([]postModel.Post, error) {
	resp, err := s.repo.GetSavedPosts(ctx, p)
	if err != nil {
		s.fail("saved posts", err)
		return nil, err
	}
	return resp.Data, nil
}

// Profile 返回持有资料的副本，未加载时为 nil
func (s *ProfileService) Profile() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	u := *s.profile
	return &u
}

func (s *ProfileService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProfileService) hold(u model.User) *model.User {
	s.mu.Lock()
	s.profile = &u
	s.err = nil
	s.mu.Unlock()
	out := u
	return &out
}

func (s *ProfileService) fail(op string, err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	logger.Log.Warn(op+" failed", zap.Error(err))
}
