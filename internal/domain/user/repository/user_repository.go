package repository

import (
	"context"
	"net/http"
	"net/url"

	postModel "photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/domain/user/model"
	"photofeed_client/pkg/apiclient"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"
)

// UserRepository 用户资源的数据客户端
type UserRepository interface {
	GetProfile(ctx context.Context) (*response.Response[model.User], error)
	UpdateProfile(ctx context.Context, patch model.UserPatch) (*response.Response[model.User], error)
	ToggleFollow(ctx context.Context, userID string) (*response.Response[model.FollowResult], error)
	GetUserPosts(ctx context.Context, userID string, p utils.Pagination) (*response.Response[[]postModel.Post], error)
	GetSavedPosts(ctx context.Context, p utils.Pagination) (*response.Response[[]postModel.Post], error)
}

type userRepository struct {
	client *apiclient.Client
}

// NewUserRepository 创建用户仓库
func NewUserRepository(client *apiclient.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetProfile(ctx context.Context) (*response.Response[model.User], error) {
	return apiclient.Do[model.User](ctx, r.client, apiclient.Request{
		Operation: "user.profile",
		Method:    http.MethodGet,
		Path:      "/user/profile",
	})
}

func (r *userRepository) UpdateProfile(ctx context.Context, patch model.UserPatch) (*response.Response[model.User], error) {
	return apiclient.Do[model.User](ctx, r.client, apiclient.Request{
		Operation: "user.update",
		Method:    http.MethodPatch,
		Path:      "/user/profile",
		Body:      patch,
	})
}

func (r *userRepository) ToggleFollow(ctx context.Context, userID string) (*response.Response[model.FollowResult], error) {
	return apiclient.Do[model.FollowResult](ctx, r.client, apiclient.Request{
		Operation: "user.follow",
		Method:    http.MethodPost,
		Path:      "/user/" + url.PathEscape(userID) + "/follow",
	})
}

func (r *userRepository) GetUserPosts(ctx context.Context, userID string, p utils.Pagination) (*response.Response[[]postModel.Post], error) {
	return apiclient.Do[[]postModel.Post](ctx, r.client, apiclient.Request{
		Operation: "user.posts",
		Method:    http.MethodGet,
		Path:      "/user/" + url.PathEscape(userID) + "/posts?" + p.Query(),
	})
}

func (r *userRepository) GetSavedPosts(ctx context.Context, p utils.Pagination) (*response.Response[[]postModel.Post], error) {
	return apiclient.Do[[]postModel.Post](ctx, r.client, apiclient.Request{
		Operation: "user.saved",
		Method:    http.MethodGet,
		Path:      "/user/saved-posts?" + p.Query(),
	})
}
