package handlers

import (
	"crowdfunding-backend/app/server/types"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) er(statusCode int, message string) error {
	return types.NewAPIError(statusCode, message)
}

func (a *App) erFields(statusCode int, message string, fields ...string) error {
	return &types.APIError{Code: statusCode, Message: message, Fields: fields}
}

func (a *App) ok(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, &types.SuccessMessage{
		Status: types.StatusSuccess,
		Data:   data,
	})
}

// HTTPErrorHandler 是所有错误的出口：记录日志并输出统一的错误结构
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	res := types.ErrorMessage{
		Status:  types.StatusError,
		Message: "server error",
	}
	routeMissing := false

	var (
		apiErr  *types.APIError
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &apiErr):
		statusCode = apiErr.Code
		res.Message = apiErr.Message
		res.Fields = apiErr.Fields
	case errors.As(err, &httpErr):
		statusCode = httpErr.Code
		if statusCode == http.StatusNotFound || statusCode == http.StatusMethodNotAllowed {
			// 路由不存在，无论请求方法
			statusCode = http.StatusNotFound
			res.Message = "no such route"
			routeMissing = true
		} else if msg, ok := httpErr.Message.(string); ok && statusCode < http.StatusInternalServerError {
			res.Message = msg
		}
	}

	if statusCode < http.StatusInternalServerError && !routeMissing {
		res.Status = types.StatusFailed
	}

	if statusCode >= http.StatusInternalServerError {
		a.l.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("URI", c.Request().RequestURI),
			zap.Int("status", statusCode),
			zap.Error(err),
		)
	} else {
		a.l.Debug("request rejected",
			zap.String("method", c.Request().Method),
			zap.String("URI", c.Request().RequestURI),
			zap.Int("status", statusCode),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = c.JSON(statusCode, &res)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
