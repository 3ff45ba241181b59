package model

import (
	baseModel "photofeed_client/pkg/model"
)

// Comment 评论模型，回复只有一层
type Comment struct {
	baseModel.BaseModel
	PostID   string           `json:"postId"`
	Author   baseModel.Author `json:"author"`
	Content  string           `json:"content"`
	Likes    int              `json:"likes"`
	IsLiked  bool             `json:"isLiked,omitempty"`
	ParentID string           `json:"parentId,omitempty"` // 回复时指向一级评论
	Replies  []Comment        `json:"replies,omitempty"`
}

// Clone 深拷贝 (含回复)
func (c Comment) Clone() Comment {
	if c.Replies != nil {
		replies := make([]Comment, len(c.Replies))
		for i, r := range c.Replies {
			replies[i] = r.Clone()
		}
		c.Replies = replies
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// CreateCommentRequest 发表评论请求体
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked bool `json:"liked"`
}
