package app

import (
	"errors"
	"fmt"
	"sync"

	commentRepo "photofeed_client/internal/domain/comment/repository"
	commentService "photofeed_client/internal/domain/comment/service"
	postRepo "photofeed_client/internal/domain/post/repository"
	postService "photofeed_client/internal/domain/post/service"
	userRepo "photofeed_client/internal/domain/user/repository"
	userService "photofeed_client/internal/domain/user/service"
	"photofeed_client/internal/pkg/config"
	"photofeed_client/internal/pkg/imageintake"
	"photofeed_client/internal/pkg/uploader"
	"photofeed_client/pkg/apiclient"
	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/metrics"
	baseModel "photofeed_client/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var ErrAlreadyInitialized = errors.New("app already initialized")

// App 持有数据客户端与各个 store，生命周期由调用方管理
type App struct {
	Config   config.Config
	Client   *apiclient.Client
	Registry *prometheus.Registry // 客户端指标，可经 promhttp.HandlerFor 暴露
	Metrics  *metrics.MetricsCollector

	Posts   *postService.PostStore
	Feed    *postService.FeedScroller
	Intake  *imageintake.Intake
	Profile *userService.ProfileService

	comments commentRepo.CommentRepository
}

// New 按配置装配依赖
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	baseURL, err := cfg.API.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	up, err := uploader.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init uploader: %w", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewMetricsCollector(reg)
	client := apiclient.New(baseURL,
		apiclient.WithHeaders(cfg.API.Headers),
		apiclient.WithMetrics(collector),
		apiclient.WithLogger(logger.Log),
	)

	posts := postService.NewPostStore(postRepo.NewPostRepository(client))
	posts.SetPageSize(cfg.Pagination.DefaultLimit)
	a := &App{
		Config:   cfg,
		Client:   client,
		Registry: reg,
		Metrics:  collector,
		Posts:    posts,
		Feed:     postService.NewFeedScroller(posts),
		Intake:   imageintake.New(imageintake.OptionsFromConfig(cfg.Upload), up),
		Profile:  userService.NewProfileService(userRepo.NewUserRepository(client)),
		comments: commentRepo.NewCommentRepository(client),
	}

	logger.Log.Info("app initialized",
		zap.String("base_url", baseURL),
		zap.String("upload_mode", cfg.Upload.Mode),
	)
	return a, nil
}

// NewComposer 打开一个新的发布表单
func (a *App) NewComposer() *postService.Composer {
	author := baseModel.Author{
		ID:     a.Config.Author.ID,
		Name:   a.Config.Author.Name,
		Avatar: a.Config.Author.Avatar,
	}
	return postService.NewComposer(a.Posts, a.Intake, author, a.Config.Validation.PostTitleMaxLength)
}

// CommentThread 帖子详情页的评论
func (a *App) CommentThread(postID string) *commentService.CommentThread {
	thread := commentService.NewCommentThread(a.comments, postID, a.Config.Validation.CommentMaxLength)
	thread.SetPageSize(a.Config.Pagination.DefaultLimit)
	return thread
}

// Close 刷新日志缓冲
func (a *App) Close() {
	logger.Sync()
}

var (
	mu       sync.Mutex
	instance *App
)

// Init 初始化全局实例，重复调用返回 ErrAlreadyInitialized
func Init(cfg config.Config) (*App, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return nil, ErrAlreadyInitialized
	}

	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	instance = a
	return a, nil
}

// Default 返回全局实例，未 Init 时 panic
func Default() *App {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		panic("app: Default called before Init")
	}
	return instance
}

// Shutdown 释放全局实例，之后可重新 Init
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return
	}
	instance.Close()
	instance = nil
}
