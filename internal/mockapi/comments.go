package mockapi

import (
	"net/http"
	"strings"

	commentModel "photofeed_client/internal/domain/comment/model"
	"photofeed_client/internal/pkg/registry"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommentModule /posts/:id/comments 资源
type CommentModule struct {
	db *DB
}

func (m *CommentModule) Name() string  { return "comments" }
func (m *CommentModule) Priority() int { return 20 }

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	g := ctx.Router.Group("/posts/:id/comments")
	g.GET("", m.List)
	g.POST("", m.Create)
	g.DELETE("/:commentId", m.Delete)
	g.POST("/:commentId/like", m.ToggleLike)
	return nil
}

func (m *CommentModule) List(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	postID := c.Param("id")
	if m.db.findPost(postID) < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}
	response.Success(c, utils.Paginate(m.db.comments[postID], p).Data)
}

func (m *CommentModule) Create(c *gin.Context) {
	var req commentModel.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	postID := c.Param("id")
	m.db.mu.RLock()
	exists := m.db.findPost(postID) >= 0
	author := m.db.me()
	m.db.mu.RUnlock()
	if !exists {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	created := m.db.InsertComment(commentModel.Comment{
		PostID:  postID,
		Author:  author,
		Content: req.Content,
	})
	response.Created(c, created)
}

// Delete 删除一级评论或回复，成功返回 204
func (m *CommentModule) Delete(c *gin.Context) {
	postID, commentID := c.Param("id"), c.Param("commentId")

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	comments := m.db.comments[postID]
	removed := 0
	for i := range comments {
		if comments[i].ID == commentID {
			removed = 1 + len(comments[i].Replies)
			m.db.comments[postID] = append(comments[:i:i], comments[i+1:]...)
			break
		}
		replies := comments[i].Replies
		for j := range replies {
			if replies[j].ID == commentID {
				removed = 1
				comments[i].Replies = append(replies[:j:j], replies[j+1:]...)
				break
			}
		}
		if removed > 0 {
			break
		}
	}
	if removed == 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}
	if i := m.db.findPost(postID); i >= 0 {
		m.db.posts[i].Comments -= removed
	}

	c.Status(http.StatusNoContent)
}

func (m *CommentModule) ToggleLike(c *gin.Context) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	target := findComment(m.db.comments[c.Param("id")], c.Param("commentId"))
	if target == nil {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	target.IsLiked = !target.IsLiked
	if target.IsLiked {
		target.Likes++
	} else {
		target.Likes--
	}
	response.Success(c, commentModel.LikeResult{Liked: target.IsLiked})
}

func findComment(comments []commentModel.Comment, id string) *commentModel.Comment {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i]
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].ID == id {
				return &comments[i].Replies[j]
			}
		}
	}
	return nil
}
