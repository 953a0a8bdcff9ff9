package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mbramani/coders-boutique-task/internal/model"
	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
	"github.com/mbramani/coders-boutique-task/pkg/response"
	"github.com/mbramani/coders-boutique-task/pkg/validation"
)

func init() {
	statuses := make([]string, len(model.Statuses))
	for i, st := range model.Statuses {
		statuses[i] = string(st)
	}
	validation.Register("assessment_status", func(fl validator.FieldLevel) bool {
		return model.Status(fl.Field().String()).Valid()
	}, "must be one of "+strings.Join(statuses, ", "))
}

// ── 测评模块 DTO ──

// UpdateAssessmentRequest 更新测评请求
// score 为 null 或缺省均表示清空分数；与 status 之间不做联动校验
type UpdateAssessmentRequest struct {
	Status string   `json:"status" validate:"required,assessment_status"`
	Score  *float64 `json:"score"  validate:"omitnil,whole,min=0,max=100"`

	// DecodeErrors 字段类型不匹配时记录，由 Service 与其它校验错误合并返回
	DecodeErrors []pkgerrors.FieldError `json:"-"`
}

// UnmarshalJSON 宽松解码：仅当请求体不是 JSON 对象时返回错误，
// 单个字段类型不匹配记入 DecodeErrors，不中断解码
func (r *UpdateAssessmentRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateAssessmentRequest{}
	if v, ok := raw["status"]; ok && !isJSONNull(v) {
		if err := json.Unmarshal(v, &r.Status); err != nil {
			r.DecodeErrors = append(r.DecodeErrors, pkgerrors.FieldError{Field: "status", Message: "must be a string"})
		}
	}
	if v, ok := raw["score"]; ok && !isJSONNull(v) {
		var score float64
		if err := json.Unmarshal(v, &score); err != nil {
			r.DecodeErrors = append(r.DecodeErrors, pkgerrors.FieldError{Field: "score", Message: "must be a number"})
		} else {
			r.Score = &score
		}
	}
	return nil
}

func isJSONNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// AssessmentListResponse 列表响应数据
type AssessmentListResponse struct {
	Assessments []model.Assessment  `json:"assessments"`
	Pagination  response.Pagination `json:"pagination"`
}

// AssessmentSummaryResponse 统计概览
type AssessmentSummaryResponse struct {
	TotalAssessments     int64                  `json:"totalAssessments"`
	CompletedAssessments int64                  `json:"completedAssessments"`
	CompletionRate       float64                `json:"completionRate"` // 百分比，0-100
	ByStatus             map[model.Status]int64 `json:"byStatus"`
}
