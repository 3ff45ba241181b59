package model

// User 用户资料
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	RedBookID   string `json:"redBookId"`
	Bio         string `json:"bio,omitempty"`
	Following   int    `json:"following"`
	Followers   int    `json:"followers"`
	Likes       int    `json:"likes"`
	IsFollowing bool   `json:"isFollowing"`
}

// UserPatch 资料修改，只发送非 nil 字段
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Bio    *string `json:"bio,omitempty"`
}

// FollowResult 关注切换结果
type FollowResult struct {
	Following bool `json:"following"`
}
