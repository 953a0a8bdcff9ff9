// Package validation 封装 go-playground/validator，统一输出聚合字段错误
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate

	// customMessages 由 Register 注册的自定义规则文案
	customMessages = map[string]string{}
)

// Register 注册自定义校验规则及其失败文案
// 仅应在包初始化阶段调用
func Register(tag string, fn validator.Func, message string) {
	if err := Validator().RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
	customMessages[tag] = message
}

// Validator 返回进程内共享的校验器实例（并发安全）
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// 字段名优先取 param 标签（查询参数），其次取 json 标签
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("param"); name != "" {
				return name
			}
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("whole", isWhole)

		validate = v
	})
	return validate
}

// Struct 校验结构体，所有字段错误聚合为一个 *errors.ValidationError
// 校验通过时返回 nil
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := pkgerrors.NewValidationError()
	for _, fe := range verrs {
		ve.Add(fe.Field(), Message(fe))
	}
	return ve
}

// Message 将单个校验失败翻译为可读文案
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "number":
		return "must be a non-negative integer"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "whole":
		return "must be an integer"
	default:
		if msg, ok := customMessages[fe.Tag()]; ok {
			return msg
		}
		return "is invalid"
	}
}

// isWhole 浮点数必须为整数值（JSON 数字统一解码为 float64）
func isWhole(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
