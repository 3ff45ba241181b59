package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"photofeed_client/pkg/utils"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	API        APIConfig        `mapstructure:"api"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Validation ValidationConfig `mapstructure:"validation"`
	Author     AuthorConfig     `mapstructure:"author"`
	OSS        OSSConfig        `mapstructure:"oss"`
	Server     ServerConfig     `mapstructure:"server"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

// APIConfig 后端 REST 服务地址
type APIConfig struct {
	Host    string            `mapstructure:"host"`
	BaseURL string            `mapstructure:"base_url"` // 相对路径时基于 Host 解析
	Headers map[string]string `mapstructure:"headers"`  // 每个请求附带的静态请求头
}

type UploadConfig struct {
	Mode          string   `mapstructure:"mode"` // inline, oss
	MaxFileSize   int64    `mapstructure:"max_file_size"`
	MaxFiles      int      `mapstructure:"max_files"`
	AcceptedTypes []string `mapstructure:"accepted_types"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"` // 列表每页条数，请求未指定 limit 时使用
}

type ValidationConfig struct {
	PostTitleMaxLength int `mapstructure:"post_title_max_length"`
	CommentMaxLength   int `mapstructure:"comment_max_length"`
}

// AuthorConfig 发布草稿时附带的作者快照
type AuthorConfig struct {
	ID     string `mapstructure:"id"`
	Name   string `mapstructure:"name"`
	Avatar string `mapstructure:"avatar"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

// ServerConfig 本地契约模拟服务 (cmd/devserver)
type ServerConfig struct {
	Port      string  `mapstructure:"port"`
	Mode      string  `mapstructure:"mode"`
	RateLimit float64 `mapstructure:"rate_limit"` // 每秒请求数
	RateBurst int     `mapstructure:"rate_burst"`
}

const (
	UploadModeInline = "inline"
	UploadModeOSS    = "oss"
)

var GlobalConfig Config

// Validate 验证配置
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base url is required")
	}
	if _, err := c.API.ResolveBaseURL(); err != nil {
		return err
	}

	if c.Upload.MaxFiles <= 0 || c.Upload.MaxFileSize <= 0 {
		return errors.New("upload limits must be positive")
	}
	if len(c.Upload.AcceptedTypes) == 0 {
		return errors.New("at least one accepted upload type is required")
	}
	switch c.Upload.Mode {
	case UploadModeInline:
	case UploadModeOSS:
		if c.OSS.Endpoint == "" || c.OSS.BucketName == "" || c.OSS.AccessKeyID == "" {
			return errors.New("oss configuration is incomplete")
		}
	default:
		return fmt.Errorf("unknown upload mode %q", c.Upload.Mode)
	}

	if c.Pagination.DefaultLimit <= 0 || c.Pagination.DefaultLimit > utils.MaxLimit {
		return fmt.Errorf("pagination default limit must be within 1..%d", utils.MaxLimit)
	}

	return nil
}

// ResolveBaseURL 返回绝对地址；BaseURL 为相对路径 (默认 /api) 时拼接到 Host 后
func (c APIConfig) ResolveBaseURL() (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api base url %q: %w", c.BaseURL, err)
	}
	if base.IsAbs() {
		return strings.TrimRight(base.String(), "/"), nil
	}

	host, err := url.Parse(c.Host)
	if err != nil || !host.IsAbs() {
		return "", fmt.Errorf("api host %q must be an absolute url when base url is relative", c.Host)
	}
	return strings.TrimRight(host.JoinPath(base.Path).String(), "/"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")

	v.SetDefault("api.host", "http://localhost:8080")
	v.SetDefault("api.base_url", "/api")

	v.SetDefault("upload.mode", UploadModeInline)
	v.SetDefault("upload.max_file_size", 5*1024*1024) // 5MB
	v.SetDefault("upload.max_files", 9)
	v.SetDefault("upload.accepted_types", []string{"image/jpeg", "image/png", "image/webp"})

	v.SetDefault("pagination.default_limit", 20)

	v.SetDefault("validation.post_title_max_length", 100)
	v.SetDefault("validation.comment_max_length", 500)

	v.SetDefault("author.id", "me")
	v.SetDefault("author.name", "我")
	v.SetDefault("author.avatar", "https://images.unsplash.com/photo-1494790108377-be9c29b29330?ixlib=rb-1.2.1&auto=format&fit=crop&w=100&q=80")

	v.SetDefault("oss.endpoint", "")
	v.SetDefault("oss.access_key_id", "")
	v.SetDefault("oss.access_key_secret", "")
	v.SetDefault("oss.bucket_name", "")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_burst", 200)
}

// Default 返回仅包含默认值的配置，库调用与测试使用
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// 默认值是静态的，解码失败只可能是代码错误
		panic(err)
	}
	return cfg
}

// Load 读取配置文件与环境变量
func Load() (Config, error) {
	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	// 根据环境选择配置文件
	configName := "config"
	if env != "dev" {
		configName = "config." + env
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	// PHOTOFEED_API_HOST -> api.host
	v.SetEnvPrefix("photofeed")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.App.Env = env

	// 与前端构建变量保持一致的覆盖项
	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfig 加载配置到 GlobalConfig，失败直接退出
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	GlobalConfig = cfg

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
