// Package seed 生成演示用测评数据
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/internal/model"
	"github.com/mbramani/coders-boutique-task/internal/repository"
)

const (
	// DefaultCount 默认生成条数
	DefaultCount = 30
	maxScore     = 100
)

// DefaultStartDate 第一条记录的分配日期，之后逐日递增
var DefaultStartDate = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

// Options 种子参数
type Options struct {
	Count     int
	StartDate time.Time
	// Reset 为 true 时先清空表并重置自增序列
	Reset bool
}

// Seeder 演示数据生成器
type Seeder struct {
	repo   *repository.Repository
	logger *zap.Logger
	rng    *rand.Rand
}

// NewSeeder 创建 Seeder；rng 为 nil 时使用基于当前时间的随机源
func NewSeeder(repo *repository.Repository, logger *zap.Logger, rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{repo: repo, logger: logger, rng: rng}
}

// Generate 生成 n 条测评记录（不写库）
// 仅 COMPLETED 状态带分数，其余状态分数为空
func (s *Seeder) Generate(n int, start time.Time) []model.Assessment {
	assessments := make([]model.Assessment, 0, n)
	for i := 1; i <= n; i++ {
		status := model.Statuses[s.rng.Intn(len(model.Statuses))]

		var score *int
		if status == model.StatusCompleted {
			v := s.rng.Intn(maxScore + 1)
			score = &v
		}

		assessments = append(assessments, model.Assessment{
			Title:        fmt.Sprintf("Assessment %d", i),
			Status:       status,
			Score:        score,
			DateAssigned: start.AddDate(0, 0, i-1),
		})
	}
	return assessments
}

// Run 在单个事务中写入种子数据，返回写入条数
func (s *Seeder) Run(ctx context.Context, opts Options) (int, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = DefaultStartDate
	}

	assessments := s.Generate(opts.Count, opts.StartDate)

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if opts.Reset {
			if err := txRepo.Assessment.Truncate(ctx); err != nil {
				return fmt.Errorf("清空测评表失败: %w", err)
			}
			s.logger.Info("已清空测评表")
		}
		if err := txRepo.Assessment.CreateBatch(ctx, assessments); err != nil {
			return fmt.Errorf("写入测评数据失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("种子数据写入完成",
		zap.Int("count", len(assessments)),
		zap.Bool("reset", opts.Reset),
	)
	return len(assessments), nil
}
