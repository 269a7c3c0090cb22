package middlewares_test

import (
	"crowdfunding-backend/app/server/handlers"
	"crowdfunding-backend/app/server/middlewares"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthRateLimiter(t *testing.T) {
	app := handlers.NewApp(zap.NewNop(), handlers.Stores{}, nil, nil)

	e := echo.New()
	e.HTTPErrorHandler = app.HTTPErrorHandler
	e.POST("/api/v1/users/signin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, middlewares.AuthRateLimiter(1))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signin", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// 突发上限为 2
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)

	rec := call("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var res struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "failed", res.Status)
	assert.Equal(t, "too many requests", res.Message)

	// 其他客户端不受影响
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2").Code)
}
