// Package client 测评接口的 Go 客户端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mbramani/coders-boutique-task/internal/dto"
	"github.com/mbramani/coders-boutique-task/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError 服务端返回的失败信封（success=false 或非 2xx）
type APIError struct {
	Status  int
	Err     string
	Message string
}

func (e *APIError) Error() string {
	switch {
	case e.Err != "" && e.Message != "":
		return fmt.Sprintf("%d %s: %s", e.Status, e.Err, e.Message)
	case e.Err != "":
		return fmt.Sprintf("%d %s", e.Status, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("%d An error occurred", e.Status)
	}
}

// ListParams 列表查询参数；零值字段不发送，由服务端取默认值
type ListParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Search    string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// UpdateBody 更新请求体；Score 为 nil 时发送 null（清空分数）
type UpdateBody struct {
	Status string `json:"status"`
	Score  *int   `json:"score"`
}

// Client 测评接口客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New 创建客户端；baseURL 形如 http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAssessments GET /api/assessments
func (c *Client) ListAssessments(ctx context.Context, p ListParams) (*dto.AssessmentListResponse, error) {
	target := c.baseURL + "/api/assessments"
	if q := p.values().Encode(); q != "" {
		target += "?" + q
	}

	var out dto.AssessmentListResponse
	if err := c.do(ctx, http.MethodGet, target, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAssessment PUT /api/assessments/{id}
func (c *Client) UpdateAssessment(ctx context.Context, id int, body UpdateBody) (*model.Assessment, error) {
	target := fmt.Sprintf("%s/api/assessments/%d", c.baseURL, id)

	var out model.Assessment
	if err := c.do(ctx, http.MethodPut, target, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary GET /api/assessments/summary
func (c *Client) Summary(ctx context.Context) (*dto.AssessmentSummaryResponse, error) {
	var out dto.AssessmentSummaryResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/assessments/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// envelope 服务端统一响应信封
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("编码请求体失败: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "invalid response body"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Err: env.Error, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("解码响应数据失败: %w", err)
		}
	}
	return nil
}
