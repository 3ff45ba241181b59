package apiclient

import (
	"errors"
	"fmt"
)

// APIError 服务端返回非 2xx 状态码
type APIError struct {
	Status  int
	Message string
	Errors  map[string][]string // 字段级校验错误，服务端未返回时为 nil
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// FieldErrors 返回指定字段的校验错误
func (e *APIError) FieldErrors(field string) []string {
	return e.Errors[field]
}

// IsStatus 判断 err 链上是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
