package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mbramani/coders-boutique-task/internal/model"
)

// AssessmentFilter 列表过滤条件
type AssessmentFilter struct {
	// Search 非空时按 title 做大小写不敏感的子串匹配
	Search string
}

// AssessmentOrder 排序条件；Column 为数据库列名
type AssessmentOrder struct {
	Column string
	Desc   bool
}

// AssessmentPatch 局部更新内容（仅 status / score）
type AssessmentPatch struct {
	Status model.Status
	Score  *int
}

// AssessmentRepository 测评数据访问接口
type AssessmentRepository interface {
	Find(ctx context.Context, filter AssessmentFilter, order AssessmentOrder, offset, limit int) ([]model.Assessment, error)
	Count(ctx context.Context, filter AssessmentFilter) (int64, error)
	GetByID(ctx context.Context, id int) (*model.Assessment, error)
	UpdateByID(ctx context.Context, id int, patch AssessmentPatch) (*model.Assessment, error)
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
	CreateBatch(ctx context.Context, assessments []model.Assessment) error
	Truncate(ctx context.Context) error
}

// sortableColumns 允许出现在 ORDER BY 中的列（防止拼接注入）
var sortableColumns = map[string]bool{
	"title":         true,
	"status":        true,
	"score":         true,
	"date_assigned": true,
}

type assessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo 创建 AssessmentRepository 实例
func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Find(ctx context.Context, filter AssessmentFilter, order AssessmentOrder, offset, limit int) ([]model.Assessment, error) {
	column := order.Column
	if !sortableColumns[column] {
		column = "date_assigned"
	}

	db := r.scoped(ctx, filter).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: order.Desc}).
		Order("id ASC") // 同值时按主键稳定排序

	if offset > 0 {
		db = db.Offset(offset)
	}
	// limit <= 0 表示不分页（导出）
	if limit > 0 {
		db = db.Limit(limit)
	}

	assessments := make([]model.Assessment, 0)
	if err := db.Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepo) Count(ctx context.Context, filter AssessmentFilter) (int64, error) {
	var total int64
	err := r.scoped(ctx, filter).Count(&total).Error
	return total, err
}

func (r *assessmentRepo) GetByID(ctx context.Context, id int) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateByID 单条原子更新，RETURNING 回填更新后的完整记录
// 未命中任何行时返回 gorm.ErrRecordNotFound
func (r *assessmentRepo) UpdateByID(ctx context.Context, id int, patch AssessmentPatch) (*model.Assessment, error) {
	var a model.Assessment
	res := r.db.WithContext(ctx).
		Model(&a).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": patch.Status,
			"score":  patch.Score,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *assessmentRepo) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Assessment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *assessmentRepo) CreateBatch(ctx context.Context, assessments []model.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&assessments, 100).Error
}

func (r *assessmentRepo) Truncate(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("TRUNCATE TABLE assessments RESTART IDENTITY").Error
}

// ── 内部辅助方法 ──

func (r *assessmentRepo) scoped(ctx context.Context, filter AssessmentFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Assessment{})
	if filter.Search != "" {
		db = db.Where("title ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	return db
}

// likeEscaper 转义 LIKE 通配符，使搜索文本按字面匹配（PostgreSQL 默认转义符为反斜杠）
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
