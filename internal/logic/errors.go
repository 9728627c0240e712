package logic

import (
	"errors"
)

// 错误类别，handler层通过errors.Is映射到HTTP状态码
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// Error 业务错误，携带类别和面向用户的描述
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound 资源不存在
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Forbidden 无权访问
func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Validation 参数校验失败
func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Conflict 状态冲突，针对终态或不适用状态上的转移请求
func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}
