package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mbramani/coders-boutique-task/pkg/errors"
)

type sample struct {
	Name  string   `json:"name"  validate:"required"`
	Kind  string   `json:"kind"  validate:"omitempty,oneof=a b"`
	Score *float64 `json:"score" validate:"omitnil,whole,min=0,max=100"`
	Page  *string  `param:"page" validate:"omitnil,number"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Name: "x", Kind: "a", Score: ptr(87.0), Page: ptr("2")})
	assert.NoError(t, err)
}

func TestStruct_AggregatesAllFields(t *testing.T) {
	err := Struct(sample{Kind: "c", Score: ptr(150.0), Page: ptr("-1")})
	require.Error(t, err)

	var ve *pkgerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 4)

	assert.Equal(t, pkgerrors.FieldError{Field: "name", Message: "is required"}, ve.Fields[0])
	assert.Equal(t, pkgerrors.FieldError{Field: "kind", Message: "must be one of a, b"}, ve.Fields[1])
	assert.Equal(t, pkgerrors.FieldError{Field: "score", Message: "must be at most 100"}, ve.Fields[2])
	assert.Equal(t, pkgerrors.FieldError{Field: "page", Message: "must be a non-negative integer"}, ve.Fields[3])
}

func TestStruct_Whole(t *testing.T) {
	err := Struct(sample{Name: "x", Score: ptr(87.5)})
	require.Error(t, err)
	assert.Equal(t, "score: must be an integer", err.Error())
}

func TestStruct_NilScoreAllowed(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "x"}))
}

func TestStruct_NumberRejectsSignAndDecimal(t *testing.T) {
	for _, in := range []string{"abc", "-1", "+1", "1.5", "", " 1", "1e3"} {
		err := Struct(sample{Name: "x", Page: ptr(in)})
		assert.Errorf(t, err, "期望 %q 校验失败", in)
	}
}

func TestRegister_CustomMessage(t *testing.T) {
	Register("even_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}, "must have an even length")

	type custom struct {
		Code string `json:"code" validate:"even_len"`
	}
	assert.NoError(t, Struct(custom{Code: "ab"}))

	err := Struct(custom{Code: "abc"})
	require.Error(t, err)
	assert.Equal(t, "code: must have an even length", err.Error())
}
