// Package query 将原始查询参数规范化为带边界的列表查询描述
package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"

	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
	"github.com/mbramani/coders-boutique-task/pkg/validation"
)

// SortOrder 排序方向
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// 默认值
const (
	DefaultPage      = 1
	DefaultPerPage   = 10
	DefaultSortBy    = "dateAssigned"
	DefaultSortOrder = Desc
)

// sortColumns 允许排序的字段 → 数据库列
var sortColumns = map[string]string{
	"title":        "title",
	"status":       "status",
	"score":        "score",
	"dateAssigned": "date_assigned",
}

// Descriptor 校验后的列表查询描述
type Descriptor struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder SortOrder
	Search    string
}

// Offset 计算偏移量 (page-1)*perPage
func (d Descriptor) Offset() int {
	return (d.Page - 1) * d.PerPage
}

// Limit 每页条数
func (d Descriptor) Limit() int {
	return d.PerPage
}

// Column 排序字段对应的数据库列
func (d Descriptor) Column() string {
	return sortColumns[d.SortBy]
}

// Desc 是否降序
func (d Descriptor) Desc() bool {
	return d.SortOrder == Desc
}

// rawParams 原始查询参数；指针区分“未提供”与“提供了空值”
type rawParams struct {
	Page      *string `param:"page"      validate:"omitnil,number"`
	PerPage   *string `param:"perPage"   validate:"omitnil,number"`
	SortBy    *string `param:"sortBy"    validate:"omitnil,oneof=title status score dateAssigned"`
	SortOrder *string `param:"sortOrder" validate:"omitnil,oneof=asc desc"`
}

// Normalize 规范化查询参数
// 所有字段错误聚合为一个 ValidationError 返回，不在第一个错误处短路；未知参数忽略
func Normalize(params map[string]string) (Descriptor, error) {
	raw := rawParams{
		Page:      lookup(params, "page"),
		PerPage:   lookup(params, "perPage"),
		SortBy:    lookup(params, "sortBy"),
		SortOrder: lookup(params, "sortOrder"),
	}

	ve := pkgerrors.NewValidationError()
	if err := validation.Struct(raw); err != nil {
		var fieldErrs *pkgerrors.ValidationError
		if !errors.As(err, &fieldErrs) {
			return Descriptor{}, err
		}
		ve = fieldErrs
	}

	d := Descriptor{
		Page:      DefaultPage,
		PerPage:   DefaultPerPage,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Search:    params["search"],
	}

	failed := make(map[string]bool, len(ve.Fields))
	for _, f := range ve.Fields {
		failed[f.Field] = true
	}

	// 仅对通过格式校验的数字参数做范围检查
	if raw.Page != nil && !failed["page"] {
		d.Page = positiveInt(ve, "page", *raw.Page)
	}
	if raw.PerPage != nil && !failed["perPage"] {
		d.PerPage = positiveInt(ve, "perPage", *raw.PerPage)
	}
	// 偏移量 (page-1)*perPage 必须可用 int 表示
	if d.Page > 0 && d.PerPage > 0 && d.Page-1 > math.MaxInt/d.PerPage {
		ve.Add("page", "is too large")
	}
	if raw.SortBy != nil && !failed["sortBy"] {
		d.SortBy = *raw.SortBy
	}
	if raw.SortOrder != nil && !failed["sortOrder"] {
		d.SortOrder = SortOrder(*raw.SortOrder)
	}

	if err := ve.OrNil(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// FromValues 从 url.Values 取每个键的第一个值
func FromValues(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

func lookup(params map[string]string, key string) *string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	return &v
}

func positiveInt(ve *pkgerrors.ValidationError, field, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		ve.Add(field, "is too large")
		return 0
	}
	if n < 1 {
		ve.Add(field, "must be at least 1")
		return 0
	}
	return n
}
