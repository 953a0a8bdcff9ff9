package router

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/config"
	"github.com/mbramani/coders-boutique-task/internal/api/handler"
	"github.com/mbramani/coders-boutique-task/internal/api/middleware"
	"github.com/mbramani/coders-boutique-task/internal/dto"
	"github.com/mbramani/coders-boutique-task/internal/model"
	"github.com/mbramani/coders-boutique-task/internal/query"
	"github.com/mbramani/coders-boutique-task/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssessmentService struct{}

func (stubAssessmentService) List(_ context.Context, q query.Descriptor) (*dto.AssessmentListResponse, error) {
	return &dto.AssessmentListResponse{Assessments: []model.Assessment{}}, nil
}
func (stubAssessmentService) Update(_ context.Context, _ string, _ *dto.UpdateAssessmentRequest) (*model.Assessment, error) {
	return &model.Assessment{ID: 1, Status: model.StatusInProgress}, nil
}
func (stubAssessmentService) Summary(_ context.Context) (*dto.AssessmentSummaryResponse, error) {
	return &dto.AssessmentSummaryResponse{ByStatus: map[model.Status]int64{}}, nil
}
func (stubAssessmentService) Export(_ context.Context, _ query.Descriptor) (*bytes.Buffer, string, error) {
	return bytes.NewBufferString("x"), "assessments.xlsx", nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type countingLimiter struct{ n int }

func (l *countingLimiter) CheckRateLimit(_ context.Context, _ string, limit int, _ time.Duration) (bool, error) {
	l.n++
	return l.n <= limit, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			BodyLimitBytes: 1 << 10,
			CORS:           config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		},
		RateLimit: config.RateLimitConfig{UpdateLimit: 1, UpdateWindow: time.Minute},
	}
}

func setupRouter(deps Deps) *gin.Engine {
	deps.Handler = handler.NewHandler(&service.Service{Assessment: stubAssessmentService{}})
	deps.Logger = zap.NewNop()
	return Setup(testConfig(), deps)
}

func request(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_Registered(t *testing.T) {
	r := setupRouter(Deps{})

	cases := []struct {
		method, target, body string
	}{
		{http.MethodGet, "/api/assessments", ""},
		{http.MethodGet, "/api/assessments/summary", ""},
		{http.MethodGet, "/api/assessments/export", ""},
		{http.MethodPut, "/api/assessments/1", `{"status":"IN_PROGRESS"}`},
		{http.MethodGet, "/health", ""},
	}
	for _, tc := range cases {
		w := request(r, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.target)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "%s %s", tc.method, tc.target)
	}
}

func TestNoRoute_Envelope(t *testing.T) {
	r := setupRouter(Deps{})

	w := request(r, http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHealth_DatabaseDown(t *testing.T) {
	r := setupRouter(Deps{DB: fakePinger{err: errors.New("connection refused")}})

	w := request(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpdate_RateLimited(t *testing.T) {
	r := setupRouter(Deps{Limiter: &countingLimiter{}})

	first := request(r, http.MethodPut, "/api/assessments/1", `{"status":"IN_PROGRESS"}`)
	second := request(r, http.MethodPut, "/api/assessments/1", `{"status":"IN_PROGRESS"}`)
	list := request(r, http.MethodGet, "/api/assessments", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, list.Code, "列表接口不受更新限流影响")
}

func TestMetrics_Exposed(t *testing.T) {
	r := setupRouter(Deps{Metrics: middleware.NewMetrics("assessments")})

	request(r, http.MethodGet, "/api/assessments", "")
	w := request(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `assessments_http_requests_total{method="GET",route="/api/assessments",status="200"} 1`)
}
