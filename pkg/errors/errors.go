package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrNotFound 记录不存在（由存储层返回，对外按 StorageError 处理）
var ErrNotFound = stderrors.New("record not found")

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError 客户端输入校验失败（400）
// 聚合所有字段错误，不在第一个错误处短路
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError 由字段错误列表构造 ValidationError
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Add 追加一个字段错误
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors 是否存在任何字段错误
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil 无字段错误时返回 nil，避免返回带类型的 nil 接口
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ", ")
}

// StorageError 持久层错误（500），包括记录不存在
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError 包装存储层错误
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation 判断错误链中是否含 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsStorage 判断错误链中是否含 StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return stderrors.As(err, &se)
}
