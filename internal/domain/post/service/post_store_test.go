package service

import (
	"context"
	"errors"
	"testing"

	"photofeed_client/internal/domain/post/model"
	"photofeed_client/pkg/apiclient"
	"photofeed_client/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestLoadPosts(t *testing.T) {
	t.Run("Explicit first page replaces every time", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		store := NewPostStore(mockRepo)
		page := []model.Post{createTestPost("p1", "a", 0), createTestPost("p2", "b", 0)}

		mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 1, Limit: 20}).Return(ok(page), nil).Twice()

		require.NoError(t, store.LoadPosts(ctx, &utils.Pagination{Page: 1}))
		require.NoError(t, store.LoadPosts(ctx, &utils.Pagination{Page: 1}))

		assert.Len(t, store.Posts(), 2)
		assert.True(t, store.HasMore())
		// 游标与请求页无关，每次加一
		assert.Equal(t, 3, store.NextPage())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unspecified page follows cursor and appends", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		store := NewPostStore(mockRepo)

		mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 1, Limit: 20}).
			Return(ok([]model.Post{createTestPost("p1", "a", 0)}), nil).Once()
		mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 2, Limit: 20}).
			Return(ok([]model.Post{createTestPost("p2", "b", 0)}), nil).Once()
		mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 3, Limit: 20}).
			Return(ok([]model.Post{}), nil).Once()

		require.NoError(t, store.LoadPosts(ctx, nil))
		require.NoError(t, store.LoadPosts(ctx, nil))
		require.NoError(t, store.LoadPosts(ctx, nil))

		posts := store.Posts()
		require.Len(t, posts, 2)
		assert.Equal(t, "p1", posts[0].ID)
		assert.Equal(t, "p2", posts[1].ID)
		assert.False(t, store.HasMore())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit later page appends and still advances cursor", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		store := NewPostStore(mockRepo)

		mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 5, Limit: 10}).
			Return(ok([]model.Post{createTestPost("p5", "e", 0)}), nil)

		require.NoError(t, store.LoadPosts(ctx, &utils.Pagination{Page: 5, Limit: 10}))

		assert.Len(t, store.Posts(), 1)
		assert.Equal(t, 2, store.NextPage())
	})

	t.Run("Failure is recorded and returned", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		store := NewPostStore(mockRepo)
		apiErr := &apiclient.APIError{Status: 500, Message: "boom"}

		mockRepo.On("GetPosts", mock.Anything, mock.Anything).Return(nil, apiErr)

		err := store.LoadPosts(ctx, nil)

		assert.ErrorIs(t, err, apiErr)
		assert.Equal(t, apiErr, store.Err())
		assert.False(t, store.Loading())
		assert.Equal(t, 1, store.NextPage())
		assert.Empty(t, store.Posts())
	})
}

func TestAddPost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("old", "old", 2)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))

	t.Run("Prepends server post", func(t *testing.T) {
		draft := model.PostDraft{Title: "sunset", Image: "data:A", Images: []string{"data:A"}}
		created := createTestPost("srv-1", "sunset", 0)
		mockRepo.On("CreatePost", mock.Anything, draft).Return(ok(created), nil).Once()

		got, err := store.AddPost(ctx, draft)

		require.NoError(t, err)
		assert.Equal(t, "srv-1", got.ID)
		posts := store.Posts()
		require.Len(t, posts, 2)
		assert.Equal(t, "srv-1", posts[0].ID)
	})

	t.Run("Failure leaves state unchanged", func(t *testing.T) {
		draft := model.PostDraft{Title: "broken"}
		mockRepo.On("CreatePost", mock.Anything, draft).Return(nil, errors.New("network down")).Once()

		got, err := store.AddPost(ctx, draft)

		assert.Error(t, err)
		assert.Nil(t, got)
		assert.Len(t, store.Posts(), 2)
	})
}

func TestUpdatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("p1", "before", 5), createTestPost("p2", "other", 1)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))
	selected := store.Posts()[0]
	store.SetSelectedPost(&selected)

	t.Run("Merges into list and selection", func(t *testing.T) {
		title := "after"
		update, err := model.NewPostUpdate(createTestPost("p1", "after", 5))
		require.NoError(t, err)
		mockRepo.On("UpdatePost", mock.Anything, "p1", model.PostPatch{Title: &title}).Return(ok(update), nil).Once()

		require.NoError(t, store.UpdatePost(ctx, "p1", model.PostPatch{Title: &title}))

		assert.Equal(t, "after", store.Posts()[0].Title)
		assert.Equal(t, "other", store.Posts()[1].Title)
		assert.Equal(t, "after", store.SelectedPost().Title)
	})

	t.Run("Unknown id still calls the server", func(t *testing.T) {
		mockRepo.On("UpdatePost", mock.Anything, "ghost", model.PostPatch{}).Return(ok(model.PostUpdate{}), nil).Once()

		require.NoError(t, store.UpdatePost(ctx, "ghost", model.PostPatch{}))

		assert.Len(t, store.Posts(), 2)
		mockRepo.AssertCalled(t, "UpdatePost", mock.Anything, "ghost", model.PostPatch{})
	})

	t.Run("Failure is returned unchanged", func(t *testing.T) {
		apiErr := &apiclient.APIError{Status: 403, Message: "forbidden"}
		mockRepo.On("UpdatePost", mock.Anything, "p2", mock.Anything).Return(nil, apiErr).Once()

		err := store.UpdatePost(ctx, "p2", model.PostPatch{})

		assert.True(t, apiclient.IsStatus(err, 403))
		assert.Equal(t, "other", store.Posts()[1].Title)
	})
}

func TestDeletePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("p1", "a", 0), createTestPost("p2", "b", 0)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))
	selected := store.Posts()[0]
	store.SetSelectedPost(&selected)

	mockRepo.On("DeletePost", mock.Anything, "p1").Return(ok(struct{}{}), nil).Twice()

	require.NoError(t, store.DeletePost(ctx, "p1"))
	assert.Len(t, store.Posts(), 1)
	assert.Nil(t, store.SelectedPost())

	// 已删除的 id 仍然会请求服务端
	require.NoError(t, store.DeletePost(ctx, "p1"))
	assert.Len(t, store.Posts(), 1)
	mockRepo.AssertNumberOfCalls(t, "DeletePost", 2)

	t.Run("Failure keeps entry", func(t *testing.T) {
		mockRepo.On("DeletePost", mock.Anything, "p2").Return(nil, errors.New("timeout")).Once()

		assert.Error(t, store.DeletePost(ctx, "p2"))
		assert.Len(t, store.Posts(), 1)
	})
}

func TestToggleLike(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("p1", "a", 10)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))
	selected := store.Posts()[0]
	store.SetSelectedPost(&selected)

	mockRepo.On("ToggleLike", mock.Anything, "p1").Return(ok(model.LikeResult{Liked: true}), nil).Once()
	mockRepo.On("ToggleLike", mock.Anything, "p1").Return(ok(model.LikeResult{Liked: false}), nil).Once()

	require.NoError(t, store.ToggleLike(ctx, "p1"))
	assert.Equal(t, 11, store.Posts()[0].Likes)
	assert.True(t, store.Posts()[0].IsLiked)
	assert.Equal(t, 11, store.SelectedPost().Likes)

	require.NoError(t, store.ToggleLike(ctx, "p1"))
	assert.Equal(t, 10, store.Posts()[0].Likes)
	assert.False(t, store.Posts()[0].IsLiked)
	assert.False(t, store.SelectedPost().IsLiked)

	t.Run("Failure leaves counter untouched", func(t *testing.T) {
		mockRepo.On("ToggleLike", mock.Anything, "p1").Return(nil, errors.New("offline")).Once()

		assert.Error(t, store.ToggleLike(ctx, "p1"))
		assert.Equal(t, 10, store.Posts()[0].Likes)
	})

	t.Run("Unknown id still calls the server", func(t *testing.T) {
		mockRepo.On("ToggleLike", mock.Anything, "ghost").Return(ok(model.LikeResult{Liked: true}), nil).Once()

		require.NoError(t, store.ToggleLike(ctx, "ghost"))
		assert.Equal(t, 10, store.Posts()[0].Likes)
	})
}

func TestToggleSave(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("p1", "a", 0)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))
	selected := store.Posts()[0]
	store.SetSelectedPost(&selected)

	mockRepo.On("ToggleSave", mock.Anything, "p1").Return(ok(model.SaveResult{Saved: true}), nil).Once()

	require.NoError(t, store.ToggleSave(ctx, "p1"))

	assert.True(t, store.Posts()[0].IsSaved)
	assert.True(t, store.SelectedPost().IsSaved)
	assert.Equal(t, 0, store.Posts()[0].Likes)
}

func TestLikeScenario(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)

	draft := model.PostDraft{Title: "sunset", Image: "data:...A", Images: []string{"data:...A"}}
	mockRepo.On("CreatePost", mock.Anything, draft).Return(ok(createTestPost("s1", "sunset", 0)), nil)
	mockRepo.On("ToggleLike", mock.Anything, "s1").Return(ok(model.LikeResult{Liked: true}), nil).Once()
	mockRepo.On("ToggleLike", mock.Anything, "s1").Return(ok(model.LikeResult{Liked: false}), nil).Once()

	created, err := store.AddPost(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Comments)

	require.NoError(t, store.ToggleLike(ctx, created.ID))
	assert.Equal(t, 1, store.Posts()[0].Likes)
	assert.True(t, store.Posts()[0].IsLiked)

	require.NoError(t, store.ToggleLike(ctx, created.ID))
	assert.Equal(t, 0, store.Posts()[0].Likes)
	assert.False(t, store.Posts()[0].IsLiked)
}

func TestSnapshotsAreCopies(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	mockRepo.On("GetPosts", mock.Anything, mock.Anything).
		Return(ok([]model.Post{createTestPost("p1", "a", 0)}), nil)
	require.NoError(t, store.LoadPosts(ctx, nil))

	posts := store.Posts()
	posts[0].Title = "mutated"
	posts[0].Images[0] = "mutated"

	assert.Equal(t, "a", store.Posts()[0].Title)
	assert.NotEqual(t, "mutated", store.Posts()[0].Images[0])
}

func TestLoadPostsPageSize(t *testing.T) {
	mockRepo := new(MockPostRepository)
	store := NewPostStore(mockRepo)
	store.SetPageSize(5)
	mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 1, Limit: 5}).
		Return(ok([]model.Post{createTestPost("p1", "a", 0)}), nil).Once()
	mockRepo.On("GetPosts", mock.Anything, utils.Pagination{Page: 2, Limit: 50}).
		Return(ok([]model.Post{}), nil).Once()

	require.NoError(t, store.LoadPosts(ctx, nil))
	require.NoError(t, store.LoadPosts(ctx, &utils.Pagination{Limit: 50}))

	mockRepo.AssertExpectations(t)
}
