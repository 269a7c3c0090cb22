package middlewares

import (
	"crowdfunding-backend/app/server/metrics"
	"crowdfunding-backend/app/server/types"
	"errors"
	"github.com/labstack/echo/v4"
	"net/http"
	"strconv"
	"time"
)

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// 出错时响应还没有写出，从错误里推断状态码
			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			metrics.RecordHTTPRequestDuration(c.Request().Method, path, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}

func statusFromError(err error) int {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
