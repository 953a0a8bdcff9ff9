package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/internal/query"
	"github.com/mbramani/coders-boutique-task/internal/repository"
	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
)

const exportSheet = "Assessments"

var exportHeaders = []string{"ID", "Title", "Status", "Score", "Date Assigned"}

// Export 导出全部匹配记录（忽略分页参数）
//
// 输出格式：
//   - 单个 Sheet "Assessments"
//   - 表头：ID | Title | Status | Score | Date Assigned
//   - 分数为空时单元格留空
func (s *assessmentService) Export(ctx context.Context, q query.Descriptor) (*bytes.Buffer, string, error) {
	filter := repository.AssessmentFilter{Search: q.Search}
	order := repository.AssessmentOrder{Column: q.Column(), Desc: q.Desc()}

	assessments, err := s.repo.Assessment.Find(ctx, filter, order, 0, 0)
	if err != nil {
		s.logger.Error("导出查询测评失败", zap.Error(err))
		return nil, "", pkgerrors.NewStorageError("export", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("创建 Sheet 失败: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(exportSheet, "A", "A", 8)
	f.SetColWidth(exportSheet, "B", "B", 32)
	f.SetColWidth(exportSheet, "C", "C", 16)
	f.SetColWidth(exportSheet, "D", "D", 8)
	f.SetColWidth(exportSheet, "E", "E", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, c, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle)

	for i, a := range assessments {
		row := i + 2
		f.SetCellValue(exportSheet, cell("A", row), a.ID)
		f.SetCellValue(exportSheet, cell("B", row), a.Title)
		f.SetCellValue(exportSheet, cell("C", row), string(a.Status))
		if a.Score != nil {
			f.SetCellValue(exportSheet, cell("D", row), *a.Score)
		}
		f.SetCellValue(exportSheet, cell("E", row), a.DateAssigned.Format("2006-01-02"))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", fmt.Errorf("生成 Excel 文件失败: %w", err)
	}

	filename := fmt.Sprintf("assessments_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
