package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination 分页请求参数
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// PageResult 分页响应结果
type PageResult[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// Normalize 补全默认值
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// GetPageOffset 计算分页偏移量
func (p *Pagination) GetPageOffset() (int, int) {
	*p = p.Normalize()
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return (p.Page - 1) * p.Limit, p.Limit
}

// Query 编码为 page=&limit= 查询串
func (p Pagination) Query() string {
	p = p.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	return v.Encode()
}

// Paginate 截取一页数据
func Paginate[T any](items []T, p Pagination) PageResult[T] {
	offset, limit := p.GetPageOffset()
	total := len(items)

	page := []T{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = append(page, items[offset:end]...)
	}

	return PageResult[T]{
		Data:    page,
		Total:   int64(total),
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: offset+len(page) < total,
	}
}
