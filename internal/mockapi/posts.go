package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	postModel "photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/pkg/registry"
	baseModel "photofeed_client/pkg/model"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"

	"github.com/gin-gonic/gin"
)

const maxImages = 9

// PostModule /posts 资源
type PostModule struct {
	db *DB
}

func (m *PostModule) Name() string  { return "posts" }
func (m *PostModule) Priority() int { return 10 }

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	g := ctx.Router.Group("/posts")
	g.GET("", m.List)
	g.POST("", m.Create)
	g.GET("/:id", m.Get)
	g.PATCH("/:id", m.Update)
	g.DELETE("/:id", m.Delete)
	g.POST("/:id/like", m.ToggleLike)
	g.POST("/:id/save", m.ToggleSave)
	return nil
}

// List GET /posts?page=&limit=
func (m *PostModule) List(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	m.db.mu.RLock()
	page := utils.Paginate(m.db.posts, p)
	m.db.mu.RUnlock()

	response.Success(c, page.Data)
}

// Get GET /posts/:id
func (m *PostModule) Get(c *gin.Context) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	i := m.db.findPost(c.Param("id"))
	if i < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}
	response.Success(c, m.db.posts[i])
}

// Create POST /posts
func (m *PostModule) Create(c *gin.Context) {
	var draft postModel.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}
	fields := map[string][]string{}
	if strings.TrimSpace(draft.Title) == "" {
		fields["title"] = append(fields["title"], "title is required")
	}
	if len(draft.Images) == 0 {
		fields["images"] = append(fields["images"], "at least one image is required")
	}
	if len(draft.Images) > maxImages {
		fields["images"] = append(fields["images"], fmt.Sprintf("at most %d images are allowed", maxImages))
	}
	if len(fields) > 0 {
		response.Invalid(c, response.MsgInvalidParam, fields)
		return
	}
	if draft.Image == "" {
		draft.Image = draft.Images[0]
	}

	post := m.db.InsertPost(postModel.Post{
		Title:    draft.Title,
		Content:  draft.Content,
		Image:    draft.Image,
		Images:   draft.Images,
		Author:   draft.Author,
		Likes:    draft.Likes,
		Comments: draft.Comments,
		Location: draft.Location,
		Topics:   draft.Topics,
	})
	response.Created(c, post)
}

// Update PATCH /posts/:id
func (m *PostModule) Update(c *gin.Context) {
	var patch postModel.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	i := m.db.findPost(c.Param("id"))
	if i < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	p := &m.db.posts[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Topics != nil {
		p.Topics = append([]string(nil), (*patch.Topics)...)
	}
	now := baseModel.NewTimestamp(m.db.now())
	p.UpdatedAt = &now

	response.Success(c, p.Clone())
}

// Delete DELETE /posts/:id，成功返回 204 空响应
func (m *PostModule) Delete(c *gin.Context) {
	id := c.Param("id")

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	i := m.db.findPost(id)
	if i < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}
	m.db.posts = append(m.db.posts[:i:i], m.db.posts[i+1:]...)
	delete(m.db.comments, id)

	c.Status(http.StatusNoContent)
}

// ToggleLike POST /posts/:id/like
func (m *PostModule) ToggleLike(c *gin.Context) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	i := m.db.findPost(c.Param("id"))
	if i < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	p := &m.db.posts[i]
	p.IsLiked = !p.IsLiked
	if p.IsLiked {
		p.Likes++
	} else {
		p.Likes--
	}
	response.Success(c, postModel.LikeResult{Liked: p.IsLiked})
}

// ToggleSave POST /posts/:id/save
func (m *PostModule) ToggleSave(c *gin.Context) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	i := m.db.findPost(c.Param("id"))
	if i < 0 {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
		return
	}

	p := &m.db.posts[i]
	p.IsSaved = !p.IsSaved
	response.Success(c, postModel.SaveResult{Saved: p.IsSaved})
}
