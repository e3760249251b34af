package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ==================== 错误分类 ====================
//
// 五类可恢复错误：校验、容量、未授权、服务端、网络。
// 校验和容量错误永远不会产生网络请求；未授权会清空会话并短路其它处理；
// 服务端/网络错误不改动本地状态，用户可以直接重试。

// ErrSubmitInFlight 上一次提交还没返回
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ValidationError 客户端字段校验失败，按字段归属
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// CapacityError 超出 5 photo / 1 video 的槽位上限
type CapacityError struct {
	Kind      string // "photo" | "video"
	Remaining int    // 还能再加几个
	Overflow  int    // 超了几个
}

func (e *CapacityError) Error() string {
	if e.Remaining == 0 {
		return fmt.Sprintf("no %s slots left", e.Kind)
	}
	return fmt.Sprintf("only %d more %s(s) can be added, %d over the limit", e.Remaining, e.Kind, e.Overflow)
}

// FileError 单个文件被拒，原因是类型不对或者太大
type FileError struct {
	Name   string
	Reason string
}

func (e *FileError) Error() string {
	return e.Name + ": " + e.Reason
}

// UnauthorizedError token 缺失或过期。抛出前会话已被清空，
// 调用方拿到后应跳转 RedirectTo。
type UnauthorizedError struct {
	RedirectTo string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized, redirect to " + e.RedirectTo
}

// ServerError 非 2xx 响应，Message 原样透出给用户
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NetworkError 请求没能完成，提示用户稍后重试
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error, please try again: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
