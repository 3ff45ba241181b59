package model

import (
	"encoding/json"
	"fmt"

	baseModel "photofeed_client/pkg/model"
)

// Post 笔记模型
type Post struct {
	baseModel.BaseModel
	Title    string           `json:"title"`
	Content  string           `json:"content,omitempty"`
	Image    string           `json:"image"`            // 封面，创建时等于 Images[0]
	Images   []string         `json:"images,omitempty"` // 1~9 张，有序
	Author   baseModel.Author `json:"author"`
	Likes    int              `json:"likes"`
	Comments int              `json:"comments"`
	Location string           `json:"location,omitempty"`
	Topics   []string         `json:"topics,omitempty"`
	IsLiked  bool             `json:"isLiked,omitempty"`
	IsSaved  bool             `json:"isSaved,omitempty"`
}

// Gallery 详情页展示的图片列表，旧数据没有 Images 时退回封面
func (p Post) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image == "" {
		return nil
	}
	return []string{p.Image}
}

// Clone 深拷贝，对外返回的快照不与 store 共享切片
func (p Post) Clone() Post {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	if p.Topics != nil {
		p.Topics = append([]string(nil), p.Topics...)
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}

// PostDraft 创建请求体 (不含 id)
type PostDraft struct {
	Title    string           `json:"title"`
	Content  string           `json:"content,omitempty"`
	Image    string           `json:"image"`
	Images   []string         `json:"images"`
	Author   baseModel.Author `json:"author"`
	Likes    int              `json:"likes"`
	Comments int              `json:"comments"`
	Location string           `json:"location,omitempty"`
	Topics   []string         `json:"topics"`
}

// PostPatch 部分更新，nil 字段不发送
type PostPatch struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Image    *string   `json:"image,omitempty"`
	Images   *[]string `json:"images,omitempty"`
	Location *string   `json:"location,omitempty"`
	Topics   *[]string `json:"topics,omitempty"`
}

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked bool `json:"liked"`
}

// SaveResult 收藏切换结果
type SaveResult struct {
	Saved bool `json:"saved"`
}

// Topic 话题模型
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	IsFollowing bool   `json:"isFollowing,omitempty"`
}

// PostUpdate 更新接口返回的字段集合
// 只覆盖响应中实际出现的字段，未出现的字段保留本地值
type PostUpdate struct {
	raw json.RawMessage
}

func (u *PostUpdate) UnmarshalJSON(b []byte) error {
	u.raw = append(u.raw[:0], b...)
	return nil
}

func (u PostUpdate) MarshalJSON() ([]byte, error) {
	if len(u.raw) == 0 {
		return []byte("null"), nil
	}
	return u.raw, nil
}

// NewPostUpdate 由完整帖子构造更新结果
func NewPostUpdate(p Post) (PostUpdate, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return PostUpdate{}, err
	}
	return PostUpdate{raw: b}, nil
}

// ApplyTo 将返回字段合并到 p 的副本上
// 顶层字段出现即覆盖，author 等嵌套对象按整体替换
func (u PostUpdate) ApplyTo(p Post) (Post, error) {
	out := p.Clone()
	if len(u.raw) == 0 || string(u.raw) == "null" {
		return out, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(u.raw, &fields); err != nil {
		return p, fmt.Errorf("merge post update: %w", err)
	}
	// 嵌套对象整体替换，不与本地值逐字段合并
	if _, ok := fields["author"]; ok {
		out.Author = baseModel.Author{}
	}
	if _, ok := fields["updatedAt"]; ok {
		out.UpdatedAt = nil
	}
	if err := json.Unmarshal(u.raw, &out); err != nil {
		return p, fmt.Errorf("merge post update: %w", err)
	}
	return out, nil
}
