package types

import (
	"net/http"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed" // 4xx ，请求本身有问题
	StatusError   = "error"  // 5xx 或不存在的路由
)

// APIError 由 handler 返回，统一交给 HTTPErrorHandler 输出
type APIError struct {
	Code    int
	Message string
	Fields  []string // 缺失或无效的字段名
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Message
}

func NewAPIError(code int, message string) *APIError {
	if message == "" {
		if code >= http.StatusInternalServerError {
			message = "server error"
		} else {
			message = strings.ToLower(http.StatusText(code))
		}
	}
	return &APIError{Code: code, Message: message}
}

type ErrorMessage struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type SuccessMessage struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}
