package mockapi

import (
	"sync"
	"time"

	commentModel "photofeed_client/internal/domain/comment/model"
	postModel "photofeed_client/internal/domain/post/model"
	userModel "photofeed_client/internal/domain/user/model"
	baseModel "photofeed_client/pkg/model"

	"github.com/google/uuid"
)

// DB 契约模拟服务的内存数据，只有一个当前用户
type DB struct {
	mu        sync.RWMutex
	profile   userModel.User
	posts     []postModel.Post                  // 新的在前
	comments  map[string][]commentModel.Comment // postID -> 一级评论，新的在前
	following map[string]bool
	now       func() time.Time
}

// NewDB 以 me 作为当前用户创建空库
func NewDB(me baseModel.Author) *DB {
	return &DB{
		profile: userModel.User{
			ID:        me.ID,
			Name:      me.Name,
			Avatar:    me.Avatar,
			RedBookID: "10000001",
		},
		comments:  make(map[string][]commentModel.Comment),
		following: make(map[string]bool),
		now:       time.Now,
	}
}

func newID() string {
	return uuid.New().String()
}

func (db *DB) me() baseModel.Author {
	return baseModel.Author{ID: db.profile.ID, Name: db.profile.Name, Avatar: db.profile.Avatar}
}

// findPost 需持有锁
func (db *DB) findPost(id string) int {
	for i := range db.posts {
		if db.posts[i].ID == id {
			return i
		}
	}
	return -1
}

// InsertPost 直接写入帖子，ID 为空时自动分配
func (db *DB) InsertPost(p postModel.Post) postModel.Post {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = baseModel.NewTimestamp(db.now())
	}
	db.posts = append([]postModel.Post{p.Clone()}, db.posts...)
	return p
}

// InsertComment 直接写入一级评论
func (db *DB) InsertComment(c commentModel.Comment) commentModel.Comment {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = baseModel.NewTimestamp(db.now())
	}
	for i := range c.Replies {
		c.Replies[i].ParentID = c.ID
	}
	db.comments[c.PostID] = append([]commentModel.Comment{c.Clone()}, db.comments[c.PostID]...)
	if i := db.findPost(c.PostID); i >= 0 {
		db.posts[i].Comments += 1 + len(c.Replies)
	}
	return c
}

// Seed 写入本地联调用的示例数据
func (db *DB) Seed() {
	shop := baseModel.Author{ID: "u-food", Name: "美食达人", Avatar: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=100"}
	owner := baseModel.Author{ID: "u-shop", Name: "店主回复", Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100"}

	cover := "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=800"
	p := db.InsertPost(postModel.Post{
		Title:    "静安区宝藏小店",
		Content:  "周末探店，环境和味道都很棒",
		Image:    cover,
		Images:   []string{cover},
		Author:   owner,
		Likes:    128,
		Location: "上海·静安区",
		Topics:   []string{"美食", "探店"},
	})
	db.InsertComment(commentModel.Comment{
		PostID:  p.ID,
		Author:  shop,
		Content: "看起来太美味了！请问具体位置在哪里呢？",
		Likes:   42,
		Replies: []commentModel.Comment{{
			BaseModel: baseModel.BaseModel{ID: newID(), CreatedAt: baseModel.NewTimestamp(db.now())},
			PostID:    p.ID,
			Author:    owner,
			Content:   "我们在静安区南京西路888号，欢迎来品尝！",
			Likes:     12,
		}},
	})

	db.mu.RLock()
	me := db.me()
	db.mu.RUnlock()

	sunset := "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800"
	db.InsertPost(postModel.Post{
		Title:  "sunset",
		Image:  sunset,
		Images: []string{sunset},
		Author: me,
		Topics: []string{"旅行"},
	})
}
