package service

import (
	"context"

	"photofeed_client/internal/domain/post/model"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) GetPosts(ctx context.Context, p utils.Pagination) (*response.Response[[]model.Post], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[[]model.Post]), args.Error(1)
}

func (m *MockPostRepository) GetPost(ctx context.Context, id string) (*response.Response[model.Post], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[model.Post]), args.Error(1)
}

func (m *MockPostRepository) CreatePost(ctx context.Context, draft model.PostDraft) (*response.Response[model.Post], error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[model.Post]), args.Error(1)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, id string, patch model.PostPatch) (*response.Response[model.PostUpdate], error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[model.PostUpdate]), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) (*response.Response[struct{}], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[struct{}]), args.Error(1)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, id string) (*response.Response[model.LikeResult], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[model.LikeResult]), args.Error(1)
}

func (m *MockPostRepository) ToggleSave(ctx context.Context, id string) (*response.Response[model.SaveResult], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.Response[model.SaveResult]), args.Error(1)
}

func ok[T any](data T) *response.Response[T] {
	return &response.Response[T]{Data: data, Status: 200}
}

func createTestPost(id, title string, likes int) model.Post {
	p := model.Post{
		Title:  title,
		Image:  "data:image/png;base64,AAAA",
		Images: []string{"data:image/png;base64,AAAA"},
		Likes:  likes,
	}
	p.ID = id
	return p
}
