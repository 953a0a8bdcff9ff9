package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total     int64
		perPage   int
		pageCount int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
		{30, 1, 30},
	}

	for _, tc := range cases {
		p := NewPagination(tc.total, 1, tc.perPage)
		if p.PageCount != tc.pageCount {
			t.Errorf("total=%d perPage=%d: 期望 pageCount=%d，实际=%d", tc.total, tc.perPage, tc.pageCount, p.PageCount)
		}
	}
}

func TestError_DataIsNull(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "Validation error", "status: is required")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if v, ok := raw["data"]; !ok || v != nil {
		t.Errorf("失败响应应包含 data:null，实际: %v", raw["data"])
	}
	if raw["success"] != false {
		t.Errorf("期望 success=false，实际: %v", raw["success"])
	}
	if raw["error"] != "Validation error" {
		t.Errorf("期望 error=Validation error，实际: %v", raw["error"])
	}
}

func TestOK_OmitsError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, gin.H{"x": 1}, "done")

	var raw map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if _, ok := raw["error"]; ok {
		t.Error("成功响应不应包含 error 字段")
	}
	if raw["message"] != "done" {
		t.Errorf("期望 message=done，实际: %v", raw["message"])
	}
}
