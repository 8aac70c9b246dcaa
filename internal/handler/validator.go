package handler

import (
	"reflect"

	"qrorder/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// echo.Validatorの実装（go-playground/validator）
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	//numberFieldは生の文字列として検証する（required = 値がある）
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(numberField); ok {
			return n.raw
		}
		return nil
	}, numberField{})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		return usecase.InvalidInputError(err.Error())
	}
	return nil
}
