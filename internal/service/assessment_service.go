package service

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mbramani/coders-boutique-task/internal/dto"
	"github.com/mbramani/coders-boutique-task/internal/model"
	"github.com/mbramani/coders-boutique-task/internal/query"
	"github.com/mbramani/coders-boutique-task/internal/repository"
	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
	"github.com/mbramani/coders-boutique-task/pkg/response"
	"github.com/mbramani/coders-boutique-task/pkg/validation"
)

// AssessmentService 测评业务接口
type AssessmentService interface {
	// List 按查询描述分页获取测评，并返回分页信息
	List(ctx context.Context, q query.Descriptor) (*dto.AssessmentListResponse, error)
	// Update 校验并更新单条测评的 status / score
	Update(ctx context.Context, rawID string, req *dto.UpdateAssessmentRequest) (*model.Assessment, error)
	// Summary 统计概览
	Summary(ctx context.Context) (*dto.AssessmentSummaryResponse, error)
	// Export 按相同的过滤与排序导出全部匹配记录为 Excel
	Export(ctx context.Context, q query.Descriptor) (*bytes.Buffer, string, error)
}

type assessmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssessmentService 创建 AssessmentService 实例
func NewAssessmentService(repo *repository.Repository, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *assessmentService) List(ctx context.Context, q query.Descriptor) (*dto.AssessmentListResponse, error) {
	filter := repository.AssessmentFilter{Search: q.Search}
	order := repository.AssessmentOrder{Column: q.Column(), Desc: q.Desc()}

	var (
		assessments []model.Assessment
		total       int64
	)

	// 行查询与计数互不依赖，并发执行；两次读取之间不保证一致性
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.Assessment.Find(gctx, filter, order, q.Offset(), q.Limit())
		if err != nil {
			return err
		}
		assessments = rows
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.Assessment.Count(gctx, filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("查询测评列表失败",
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
			zap.String("sort_by", q.SortBy),
			zap.String("sort_order", string(q.SortOrder)),
			zap.String("search", q.Search),
			zap.Error(err),
		)
		return nil, pkgerrors.NewStorageError("list", err)
	}

	if assessments == nil {
		assessments = []model.Assessment{}
	}

	return &dto.AssessmentListResponse{
		Assessments: assessments,
		Pagination:  response.NewPagination(total, q.Page, q.PerPage),
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *assessmentService) Update(ctx context.Context, rawID string, req *dto.UpdateAssessmentRequest) (*model.Assessment, error) {
	ve := pkgerrors.NewValidationError()

	id, err := strconv.Atoi(rawID)
	if err != nil || id < 1 {
		ve.Add("id", "must be a positive integer")
	}

	// 解码阶段的类型错误优先，同一字段不再重复报告规则错误
	decoded := make(map[string]bool, len(req.DecodeErrors))
	for _, fe := range req.DecodeErrors {
		ve.Add(fe.Field, fe.Message)
		decoded[fe.Field] = true
	}

	if err := validation.Struct(req); err != nil {
		var fieldErrs *pkgerrors.ValidationError
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for _, fe := range fieldErrs.Fields {
			if !decoded[fe.Field] {
				ve.Add(fe.Field, fe.Message)
			}
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	patch := repository.AssessmentPatch{Status: model.Status(req.Status)}
	if req.Score != nil {
		score := int(*req.Score)
		patch.Score = &score
	}

	updated, err := s.repo.Assessment.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("更新测评失败：记录不存在", zap.Int("id", id))
			return nil, pkgerrors.NewStorageError("update", pkgerrors.ErrNotFound)
		}
		s.logger.Error("更新测评失败", zap.Int("id", id), zap.Error(err))
		return nil, pkgerrors.NewStorageError("update", err)
	}

	return updated, nil
}

// ────────────────────── Summary ──────────────────────

func (s *assessmentService) Summary(ctx context.Context) (*dto.AssessmentSummaryResponse, error) {
	counts, err := s.repo.Assessment.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("统计测评失败", zap.Error(err))
		return nil, pkgerrors.NewStorageError("summary", err)
	}

	byStatus := make(map[model.Status]int64, len(model.Statuses))
	var total int64
	for _, st := range model.Statuses {
		byStatus[st] = counts[st]
		total += counts[st]
	}

	completed := byStatus[model.StatusCompleted]
	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}

	return &dto.AssessmentSummaryResponse{
		TotalAssessments:     total,
		CompletedAssessments: completed,
		CompletionRate:       rate,
		ByStatus:             byStatus,
	}, nil
}
