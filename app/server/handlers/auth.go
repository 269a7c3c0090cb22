package handlers

import (
	"crowdfunding-backend/app/server/constants"
	"crowdfunding-backend/app/server/jwt"
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
	"strings"
	"time"
)

// authUser 给没有挂载认证中间件、需要自行解析 token 的接口使用
func (a *App) authUser(c echo.Context) (*jwt.User, error, int) {
	// 提取 token
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing auth token"), http.StatusUnauthorized
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 {
		return nil, fmt.Errorf("invalid auth header: %s", authHeader), http.StatusUnauthorized
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return nil, fmt.Errorf("unknown auth method: %s", splits[0]), http.StatusUnauthorized
	}

	// 验证 token
	jwtUser, err := a.jwt.ParseUser(splits[1])
	if err != nil {
		// 无效的 token
		return nil, fmt.Errorf("failed to parse token: %w", err), http.StatusUnauthorized
	}

	return jwtUser, nil, http.StatusOK
}

func (a *App) issueToken(userID uint) (string, error) {
	return a.jwt.SignToken(&jwt.User{
		ID:      userID,
		Expires: time.Now().Add(constants.AuthTokenDuration).Unix(),
	})
}
