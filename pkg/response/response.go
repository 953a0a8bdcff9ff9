package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 失败时 data 固定为 null，error 为简短错误标题，message 为可读说明
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
}

// Pagination 分页元数据
type Pagination struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PerPage   int   `json:"perPage"`
	PageCount int   `json:"pageCount"`
}

// NewPagination 计算分页信息，pageCount = ceil(total / perPage)
// perPage 由调用方保证 >= 1
func NewPagination(total int64, page, perPage int) Pagination {
	pageCount := int(total / int64(perPage))
	if total%int64(perPage) > 0 {
		pageCount++
	}
	return Pagination{
		Total:     total,
		Page:      page,
		PerPage:   perPage,
		PageCount: pageCount,
	}
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, errTitle, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Data:    nil,
		Error:   errTitle,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, errTitle, message string) {
	Error(c, http.StatusBadRequest, errTitle, message)
}

// NotFound 404
func NotFound(c *gin.Context, errTitle, message string) {
	Error(c, http.StatusNotFound, errTitle, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, "Too many requests", message)
}

// InternalError 500
func InternalError(c *gin.Context, errTitle, message string) {
	Error(c, http.StatusInternalServerError, errTitle, message)
}
