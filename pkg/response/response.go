package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构 {data, status, message?}
type Response[T any] struct {
	Data    T                   `json:"data"`              // 数据
	Status  int                 `json:"status"`            // HTTP 状态码
	Message string              `json:"message,omitempty"` // 提示信息
	Errors  map[string][]string `json:"errors,omitempty"`  // 字段级校验错误
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	Write(c, http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	Write(c, http.StatusCreated, data)
}

// Write 按指定状态码输出数据
func Write(c *gin.Context, httpCode int, data interface{}) {
	c.JSON(httpCode, Response[interface{}]{
		Data:   data,
		Status: httpCode,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, Response[interface{}]{
		Data:    nil,
		Status:  httpCode,
		Message: msg,
	})
}

// Invalid 参数校验失败，附带字段级错误
func Invalid(c *gin.Context, msg string, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, Response[interface{}]{
		Data:    nil,
		Status:  http.StatusBadRequest,
		Message: msg,
		Errors:  fields,
	})
}
