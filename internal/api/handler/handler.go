package handler

import "github.com/mbramani/coders-boutique-task/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Assessment *AssessmentHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Assessment: NewAssessmentHandler(svc.Assessment),
	}
}
