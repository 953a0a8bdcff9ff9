package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/mbramani/coders-boutique-task/internal/model"
	"github.com/mbramani/coders-boutique-task/internal/repository"
)

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[int]*model.Assessment
	nextID      int

	// 注入错误
	findErr   error
	countErr  error
	updateErr error

	updateCalls int
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{assessments: make(map[int]*model.Assessment), nextID: 1}
}

func (m *mockAssessmentRepo) add(a model.Assessment) *model.Assessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	m.assessments[a.ID] = &a
	return &a
}

func (m *mockAssessmentRepo) matching(filter repository.AssessmentFilter) []model.Assessment {
	needle := strings.ToLower(filter.Search)
	result := make([]model.Assessment, 0, len(m.assessments))
	for _, a := range m.assessments {
		if needle != "" && !strings.Contains(strings.ToLower(a.Title), needle) {
			continue
		}
		result = append(result, *a)
	}
	return result
}

func (m *mockAssessmentRepo) Find(_ context.Context, filter repository.AssessmentFilter, order repository.AssessmentOrder, offset, limit int) ([]model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}

	rows := m.matching(filter)
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareColumn(rows[i], rows[j], order.Column)
		if c == 0 {
			return rows[i].ID < rows[j].ID
		}
		if order.Desc {
			return c > 0
		}
		return c < 0
	})

	if offset >= len(rows) {
		return []model.Assessment{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *mockAssessmentRepo) Count(_ context.Context, filter repository.AssessmentFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.matching(filter))), nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id int) (*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assessments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) UpdateByID(_ context.Context, id int, patch repository.AssessmentPatch) (*model.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	a, ok := m.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a.Status = patch.Status
	a.Score = patch.Score
	cp := *a
	return &cp, nil
}

func (m *mockAssessmentRepo) CountByStatus(_ context.Context) (map[model.Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return nil, m.countErr
	}
	counts := make(map[model.Status]int64)
	for _, a := range m.assessments {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *mockAssessmentRepo) CreateBatch(_ context.Context, assessments []model.Assessment) error {
	for _, a := range assessments {
		m.add(a)
	}
	return nil
}

func (m *mockAssessmentRepo) Truncate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments = make(map[int]*model.Assessment)
	m.nextID = 1
	return nil
}

// compareColumn 比较两条记录的指定列；score 为空时视为最大（与 PostgreSQL NULL 排序一致）
func compareColumn(a, b model.Assessment, column string) int {
	switch column {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "score":
		switch {
		case a.Score == nil && b.Score == nil:
			return 0
		case a.Score == nil:
			return 1
		case b.Score == nil:
			return -1
		default:
			return *a.Score - *b.Score
		}
	default:
		return a.DateAssigned.Compare(b.DateAssigned)
	}
}
