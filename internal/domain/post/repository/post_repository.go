package repository

import (
	"context"
	"net/http"
	"net/url"

	"photofeed_client/internal/domain/post/model"
	"photofeed_client/pkg/apiclient"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"
)

// PostRepository 帖子资源的数据客户端
type PostRepository interface {
	GetPosts(ctx context.Context, p utils.Pagination) (*response.Response[[]model.Post], error)
	GetPost(ctx context.Context, id string) (*response.Response[model.Post], error)
	CreatePost(ctx context.Context, draft model.PostDraft) (*response.Response[model.Post], error)
	UpdatePost(ctx context.Context, id string, patch model.PostPatch) (*response.Response[model.PostUpdate], error)
	DeletePost(ctx context.Context, id string) (*response.Response[struct{}], error)
	ToggleLike(ctx context.Context, id string) (*response.Response[model.LikeResult], error)
	ToggleSave(ctx context.Context, id string) (*response.Response[model.SaveResult], error)
}

type postRepository struct {
	client *apiclient.Client
}

func NewPostRepository(client *apiclient.Client) PostRepository {
	return &postRepository{client: client}
}

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id)
}

func (r *postRepository) GetPosts(ctx context.Context, p utils.Pagination) (*response.Response[[]model.Post], error) {
	return apiclient.Do[[]model.Post](ctx, r.client, apiclient.Request{
		Operation: "posts.list",
		Method:    http.MethodGet,
		Path:      "/posts?" + p.Query(),
	})
}

func (r *postRepository) GetPost(ctx context.Context, id string) (*response.Response[model.Post], error) {
	return apiclient.Do[model.Post](ctx, r.client, apiclient.Request{
		Operation: "posts.get",
		Method:    http.MethodGet,
		Path:      postPath(id),
	})
}

func (r *postRepository) CreatePost(ctx context.Context, draft model.PostDraft) (*response.Response[model.Post], error) {
	return apiclient.Do[model.Post](ctx, r.client, apiclient.Request{
		Operation: "posts.create",
		Method:    http.MethodPost,
		Path:      "/posts",
		Body:      draft,
	})
}

func (r *postRepository) UpdatePost(ctx context.Context, id string, patch model.PostPatch) (*response.Response[model.PostUpdate], error) {
	return apiclient.Do[model.PostUpdate](ctx, r.client, apiclient.Request{
		Operation: "posts.update",
		Method:    http.MethodPatch,
		Path:      postPath(id),
		Body:      patch,
	})
}

func (r *postRepository) DeletePost(ctx context.Context, id string) (*response.Response[struct{}], error) {
	return apiclient.Do[struct{}](ctx, r.client, apiclient.Request{
		Operation: "posts.delete",
		Method:    http.MethodDelete,
		Path:      postPath(id),
	})
}

func (r *postRepository) ToggleLike(ctx context.Context, id string) (*response.Response[model.LikeResult], error) {
	return apiclient.Do[model.LikeResult](ctx, r.client, apiclient.Request{
		Operation: "posts.like",
		Method:    http.MethodPost,
		Path:      postPath(id) + "/like",
	})
}

func (r *postRepository) ToggleSave(ctx context.Context, id string) (*response.Response[model.SaveResult], error) {
	return apiclient.Do[model.SaveResult](ctx, r.client, apiclient.Request{
		Operation: "posts.save",
		Method:    http.MethodPost,
		Path:      postPath(id) + "/save",
	})
}
