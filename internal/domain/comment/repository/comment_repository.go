package repository

import (
	"context"
	"net/http"
	"net/url"

	"photofeed_client/internal/domain/comment/model"
	"photofeed_client/pkg/apiclient"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"
)

// CommentRepository 评论资源的数据客户端
type CommentRepository interface {
	GetComments(ctx context.Context, postID string, p utils.Pagination) (*response.Response[[]model.Comment], error)
	CreateComment(ctx context.Context, postID, content string) (*response.Response[model.Comment], error)
	DeleteComment(ctx context.Context, postID, commentID string) (*response.Response[struct{}], error)
	ToggleCommentLike(ctx context.Context, postID, commentID string) (*response.Response[model.LikeResult], error)
}

type commentRepository struct {
	client *apiclient.Client
}

func NewCommentRepository(client *apiclient.Client) CommentRepository {
	return &commentRepository{client: client}
}

func commentsPath(postID string) string {
	return "/posts/" + url.PathEscape(postID) + "/comments"
}

func commentPath(postID, commentID string) string {
	return commentsPath(postID) + "/" + url.PathEscape(commentID)
}

func (r *commentRepository) GetComments(ctx context.Context, postID string, p utils.Pagination) (*response.Response[[]model.Comment], error) {
	return apiclient.Do[[]model.Comment](ctx, r.client, apiclient.Request{
		Operation: "comments.list",
		Method:    http.MethodGet,
		Path:      commentsPath(postID) + "?" + p.Query(),
	})
}

func (r *commentRepository) CreateComment(ctx context.Context, postID, content string) (*response.Response[model.Comment], error) {
	return apiclient.Do[model.Comment](ctx, r.client, apiclient.Request{
		Operation: "comments.create",
		Method:    http.MethodPost,
		Path:      commentsPath(postID),
		Body:      model.CreateCommentRequest{Content: content},
	})
}

func (r *commentRepository) DeleteComment(ctx context.Context, postID, commentID string) (*response.Response[struct{}], error) {
	return apiclient.Do[struct{}](ctx, r.client, apiclient.Request{
		Operation: "comments.delete",
		Method:    http.MethodDelete,
		Path:      commentPath(postID, commentID),
	})
}

func (r *commentRepository) ToggleCommentLike(ctx context.Context, postID, commentID string) (*response.Response[model.LikeResult], error) {
	return apiclient.Do[model.LikeResult](ctx, r.client, apiclient.Request{
		Operation: "comments.like",
		Method:    http.MethodPost,
		Path:      commentPath(postID, commentID) + "/like",
	})
}
