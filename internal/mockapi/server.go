package mockapi

import (
	"net/http"

	"photofeed_client/internal/pkg/config"
	"photofeed_client/internal/pkg/middleware"
	"photofeed_client/internal/pkg/registry"
	baseModel "photofeed_client/pkg/model"
	"photofeed_client/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRouter 契约模拟服务路由，所有资源挂在 /api 下
// cfg.Server.RateLimit <= 0 时不限流
func NewRouter(cfg config.Config, db *DB) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	var limiter *middleware.IPRateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	r.Use(middleware.RateLimitMiddleware(limiter))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
	})

	reg := registry.New()
	reg.Register(&PostModule{db: db}, &CommentModule{db: db}, &UserModule{db: db})
	if err := reg.InitModules(&registry.ModuleContext{Router: r.Group("/api")}); err != nil {
		return nil, err
	}
	return r, nil
}

// NewDBFromConfig 以配置中的作者作为当前用户
func NewDBFromConfig(cfg config.Config) *DB {
	return NewDB(baseModel.Author{
		ID:     cfg.Author.ID,
		Name:   cfg.Author.Name,
		Avatar: cfg.Author.Avatar,
	})
}
