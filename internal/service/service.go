package service

import (
	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Assessment AssessmentService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Assessment: NewAssessmentService(repo, logger),
	}
}
