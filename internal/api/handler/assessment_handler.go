package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mbramani/coders-boutique-task/internal/dto"
	"github.com/mbramani/coders-boutique-task/internal/query"
	"github.com/mbramani/coders-boutique-task/internal/service"
	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
	"github.com/mbramani/coders-boutique-task/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AssessmentHandler 测评模块 HTTP 处理器
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// ListAssessments 分页获取测评列表
// GET /api/assessments?page=&perPage=&sortBy=&sortOrder=&search=
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	q, err := query.Normalize(query.FromValues(c.Request.URL.Query()))
	if err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.assessmentSvc.List(c.Request.Context(), q)
	if err != nil {
		h.handleAssessmentError(c, err, "Failed to fetch assessments", "An error occurred while fetching assessments")
		return
	}

	response.OK(c, result, "Assessments fetched successfully")
}

// UpdateAssessment 更新测评的 status / score
// PUT /api/assessments/:id
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	var req dto.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Validation error", "request body must be a JSON object with status and score")
		return
	}

	updated, err := h.assessmentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAssessmentError(c, err, "Failed to update assessment", "An error occurred while updating the assessment")
		return
	}

	response.OK(c, updated, "Assessment updated successfully")
}

// GetSummary 测评统计概览
// GET /api/assessments/summary
func (h *AssessmentHandler) GetSummary(c *gin.Context) {
	summary, err := h.assessmentSvc.Summary(c.Request.Context())
	if err != nil {
		h.handleAssessmentError(c, err, "Failed to fetch summary", "An error occurred while fetching the summary")
		return
	}

	response.OK(c, summary, "Summary fetched successfully")
}

// ExportAssessments 按当前过滤与排序导出 Excel
// GET /api/assessments/export?sortBy=&sortOrder=&search=
func (h *AssessmentHandler) ExportAssessments(c *gin.Context) {
	q, err := query.Normalize(query.FromValues(c.Request.URL.Query()))
	if err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	buf, filename, err := h.assessmentSvc.Export(c.Request.Context(), q)
	if err != nil {
		h.handleAssessmentError(c, err, "Failed to export assessments", "An error occurred while exporting assessments")
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleAssessmentError 校验错误 → 400（message 为字段错误明细）；其余 → 500，不暴露内部细节
func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error, errTitle, message string) {
	var ve *pkgerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, "Validation error", ve.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, errTitle, message)
	}
}
