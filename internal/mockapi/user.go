package mockapi

import (
	"net/http"

	postModel "photofeed_client/internal/domain/post/model"
	userModel "photofeed_client/internal/domain/user/model"
	"photofeed_client/internal/pkg/registry"
	"photofeed_client/pkg/response"
	"photofeed_client/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserModule /user 资源
type UserModule struct {
	db *DB
}

func (m *UserModule) Name() string  { return "user" }
func (m *UserModule) Priority() int { return 30 }

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	g := ctx.Router.Group("/user")
	g.GET("/profile", m.GetProfile)
	g.PATCH("/profile", m.UpdateProfile)
	g.GET("/saved-posts", m.SavedPosts)
	g.POST("/:id/follow", m.ToggleFollow)
	g.GET("/:id/posts", m.UserPosts)
	return nil
}

func (m *UserModule) GetProfile(c *gin.Context) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	response.Success(c, m.db.profile)
}

func (m *UserModule) UpdateProfile(c *gin.Context) {
	var patch userModel.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if patch.Name != nil {
		m.db.profile.Name = *patch.Name
	}
	if patch.Avatar != nil {
		m.db.profile.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		m.db.profile.Bio = *patch.Bio
	}
	response.Success(c, m.db.profile)
}

// ToggleFollow 关注/取关，不能关注自己
func (m *UserModule) ToggleFollow(c *gin.Context) {
	id := c.Param("id")

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if id == m.db.profile.ID {
		response.Error(c, http.StatusBadRequest, "cannot follow yourself")
		return
	}

	following := !m.db.following[id]
	if following {
		m.db.following[id] = true
		m.db.profile.Following++
	} else {
		delete(m.db.following, id)
		m.db.profile.Following--
	}
	response.Success(c, userModel.FollowResult{Following: following})
}

func (m *UserModule) UserPosts(c *gin.Context) {
	id := c.Param("id")
	m.list(c, func(p postModel.Post) bool { return p.Author.ID == id })
}

func (m *UserModule) SavedPosts(c *gin.Context) {
	m.list(c, func(p postModel.Post) bool { return p.IsSaved })
}

func (m *UserModule) list(c *gin.Context, keep func(postModel.Post) bool) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam)
		return
	}

	m.db.mu.RLock()
	matched := make([]postModel.Post, 0)
	for _, post := range m.db.posts {
		if keep(post) {
			matched = append(matched, post)
		}
	}
	m.db.mu.RUnlock()

	response.Success(c, utils.Paginate(matched, p).Data)
}
