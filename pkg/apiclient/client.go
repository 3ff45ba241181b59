// Package apiclient 是 REST 后端的通用 JSON 传输层。
// 不重试、不设置超时、不缓存，错误原样向上传递。
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/metrics"
	"photofeed_client/pkg/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	ContentTypeJSON   = "application/json"
)

// Client JSON API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	metrics    *metrics.MetricsCollector
	log        *zap.Logger
}

type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeaders 每个请求附带的静态请求头 (如 Authorization)
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

func WithMetrics(m *metrics.MetricsCollector) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New 创建客户端，baseURL 需为绝对地址，例如 http://localhost:8080/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		headers:    make(map[string]string),
		log:        logger.Log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewMetricsCollector(nil)
	}
	return c
}

// BaseURL 返回请求前缀
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request 单次调用描述
type Request struct {
	Operation string // 指标/日志标签，例如 posts.list
	Method    string
	Path      string // 以 / 开头，可带查询串
	Body      any    // nil 时不发送请求体
}

// envelope 先以原始 JSON 接收 data，成功后再解码为目标类型
type envelope struct {
	Data    json.RawMessage     `json:"data"`
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Do 发送请求并解码 {data, status, message?} 信封
// 非 2xx 返回 *APIError；网络、编码、解析失败返回包装后的普通错误
func Do[T any](ctx context.Context, c *Client, req Request) (*response.Response[T], error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request body: %w", req.Operation, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.Operation, err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	httpReq.Header.Set(HeaderRequestID, requestID)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordTransportError(req.Operation, time.Since(start))
		c.log.Warn("api request failed",
			zap.String("operation", req.Operation),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordTransportError(req.Operation, time.Since(start))
		return nil, fmt.Errorf("read %s response: %w", req.Operation, err)
	}

	cost := time.Since(start)
	c.metrics.RecordRequest(req.Operation, req.Method, resp.StatusCode, cost)
	c.log.Debug(req.Operation,
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("status_class", metrics.GetStatusCategory(resp.StatusCode)),
		zap.String("request_id", requestID),
		zap.Duration("cost", cost),
	)

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode %s response (status %d): %w", req.Operation, resp.StatusCode, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = response.MsgDefaultError
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg, Errors: env.Errors}
	}

	out := &response.Response[T]{
		Status:  env.Status,
		Message: env.Message,
	}
	if out.Status == 0 {
		out.Status = resp.StatusCode
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &out.Data); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", req.Operation, err)
		}
	}
	return out, nil
}
