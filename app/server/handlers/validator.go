package handlers

import (
	"crowdfunding-backend/app/server/types"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"reflect"
	"strings"
)

// RequestValidator 实现 echo.Validator ，错误中的字段名使用 json tag
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

func (a *App) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return &types.APIError{Code: http.StatusBadRequest, Message: "invalid fields", Fields: fields}
		}
		a.l.Error("failed to validate request", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	return nil
}
