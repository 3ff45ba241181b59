package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/pkg/imageintake"
	baseModel "photofeed_client/pkg/model"
)

var (
	ErrNothingToPublish = errors.New("content and at least one image are required")
	ErrTitleTooLong     = errors.New("title too long")
	ErrPublishing       = errors.New("publish already in progress")
)

// ComposerState 发布页状态
type ComposerState int

const (
	StateEmpty      ComposerState = iota // 无内容无图片
	StateDrafting                        // 有内容或图片
	StatePublishing                      // 创建请求进行中
)

func (s ComposerState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDrafting:
		return "drafting"
	case StatePublishing:
		return "publishing"
	default:
		return fmt.Sprintf("ComposerState(%d)", int(s))
	}
}

// PostAdder 发布目标，通常是 *PostStore
type PostAdder interface {
	AddPost(ctx context.Context, draft model.PostDraft) (*model.Post, error)
}

// ImageSelector 图片选择，通常是 *imageintake.Intake
type ImageSelector interface {
	Select(ctx context.Context, files []imageintake.File, held int) ([]imageintake.Image, error)
	RemainingSlots(held int) int // -1 表示不限制
}

// Composer 发布笔记的表单状态机
// empty -> drafting -> publishing -> empty (成功) / drafting (失败)
type Composer struct {
	posts          PostAdder
	images         ImageSelector
	author         baseModel.Author
	titleMaxLength int

	mu            sync.RWMutex
	content       string
	selected      []string
	current       int
	location      string
	topics        []string
	publishing    bool
	loadingImages int // 进行中的选择批次
	err           error
}

// NewComposer titleMaxLength <= 0 表示不限制
func NewComposer(posts PostAdder, images ImageSelector, author baseModel.Author, titleMaxLength int) *Composer {
	return &Composer{
		posts:          posts,
		images:         images,
		author:         author,
		titleMaxLength: titleMaxLength,
	}
}

// State 当前状态
func (c *Composer) State() ComposerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *Composer) stateLocked() ComposerState {
	switch {
	case c.publishing:
		return StatePublishing
	case c.content == "" && len(c.selected) == 0:
		return StateEmpty
	default:
		return StateDrafting
	}
}

func (c *Composer) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

func (c *Composer) SetLocation(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = location
}

// AddTopic 添加话题，去除首尾空白，空白或重复的话题忽略
func (c *Composer) AddTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	c.mu.Lock()
	defer c.mu.Unlock()
	if topic == "" || slices.Contains(c.topics, topic) {
		return false
	}
	c.topics = append(c.topics, topic)
	return true
}

func (c *Composer) RemoveTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = slices.DeleteFunc(c.topics, func(t string) bool { return t == topic })
}

// AddImages 追加图片，超过剩余名额的文件被丢弃
func (c *Composer) AddImages(ctx context.Context, files []imageintake.File) error {
	if len(files) == 0 {
		return nil
	}

	c.mu.Lock()
	held := len(c.selected)
	c.loadingImages++
	c.mu.Unlock()

	images, err := c.images.Select(ctx, files, held)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingImages--
	if err != nil {
		c.err = err
		return err
	}
	// 并发选择时 held 可能已过期，按当前数量重新截断
	if remaining := c.images.RemainingSlots(len(c.selected)); remaining >= 0 && len(images) > remaining {
		images = images[:remaining]
	}
	wasEmpty := len(c.selected) == 0
	for _, img := range images {
		c.selected = append(c.selected, img.URL)
	}
	if wasEmpty {
		c.current = 0
	}
	return nil
}

// RemoveImage 删除第 index 张并修正当前预览位置
func (c *Composer) RemoveImage(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.selected) {
		return
	}
	c.selected = slices.Delete(c.selected, index, index+1)

	switch {
	case len(c.selected) == 0:
		c.current = 0
	case index <= c.current:
		c.current = max(0, min(c.current-1, len(c.selected)-1))
	}
}

// ShowImage 切换预览，越界时截断到有效范围
func (c *Composer) ShowImage(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.selected) == 0 {
		c.current = 0
		return
	}
	c.current = max(0, min(index, len(c.selected)-1))
}

func (c *Composer) NextImage() {
	c.ShowImage(c.CurrentIndex() + 1)
}

func (c *Composer) PrevImage() {
	c.ShowImage(c.CurrentIndex() - 1)
}

func (c *Composer) CurrentIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Images 已选图片副本
func (c *Composer) Images() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.selected...)
}

func (c *Composer) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.topics...)
}

// Err 最近一次失败
func (c *Composer) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// CanPublish 发布按钮是否可用：内容非空白且至少一张图片
func (c *Composer) CanPublish() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canPublishLocked()
}

func (c *Composer) canPublishLocked() bool {
	return strings.TrimSpace(c.content) != "" &&
		len(c.selected) > 0 &&
		!c.publishing &&
		c.loadingImages == 0
}

// Publish 发布草稿；成功后重置表单，失败保留表单内容
func (c *Composer) Publish(ctx context.Context) (*model.Post, error) {
	c.mu.Lock()
	if c.publishing {
		c.mu.Unlock()
		return nil, ErrPublishing
	}
	if !c.canPublishLocked() {
		c.mu.Unlock()
		return nil, ErrNothingToPublish
	}
	title := strings.TrimSpace(c.content)
	if c.titleMaxLength > 0 && utf8.RuneCountInString(title) > c.titleMaxLength {
		c.err = fmt.Errorf("title exceeds %d characters: %w", c.titleMaxLength, ErrTitleTooLong)
		c.mu.Unlock()
		return nil, c.err
	}
	draft := c.draftLocked(title)
	c.publishing = true
	c.err = nil
	c.mu.Unlock()

	created, err := c.posts.AddPost(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishing = false
	if err != nil {
		c.err = err
		return nil, err
	}
	c.resetLocked()
	return created, nil
}

func (c *Composer) draftLocked(title string) model.PostDraft {
	topics := make([]string, 0, len(c.topics))
	for _, t := range c.topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	images := append([]string(nil), c.selected...)
	return model.PostDraft{
		Title:    title,
		Image:    images[0],
		Images:   images,
		Author:   c.author,
		Likes:    0,
		Comments: 0,
		Location: strings.TrimSpace(c.location),
		Topics:   topics,
	}
}

// Reset 关闭发布页时清空表单
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Composer) resetLocked() {
	c.content = ""
	c.selected = nil
	c.current = 0
	c.location = ""
	c.topics = nil
	c.err = nil
}
