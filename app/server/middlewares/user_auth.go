package middlewares

import (
	"context"
	"crowdfunding-backend/app/server/cache"
	"crowdfunding-backend/app/server/constants"
	"crowdfunding-backend/app/server/jwt"
	"crowdfunding-backend/app/server/models"
	"crowdfunding-backend/app/server/types"
	"errors"
	"fmt"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// UserAuth 验证 Bearer token 并加载对应的用户，任何一步失败都返回 401 ，不会进入后续 handler
func UserAuth(j *jwt.JWT, users UserFinder, uc *cache.Cache, l *zap.Logger) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: constants.ContextKeyToken,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l.Debug("failed to verify token", zap.String("URI", c.Request().RequestURI), zap.Error(err))
			return types.NewAPIError(http.StatusUnauthorized, "invalid or missing token")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(loadUser(users, uc, l)(next))
	}
}

func loadUser(users UserFinder, uc *cache.Cache, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			jwtUser, ok := c.Get(constants.ContextKeyToken).(*jwt.User)
			if !ok {
				return types.NewAPIError(http.StatusUnauthorized, "invalid or missing token")
			}

			rctx := c.Request().Context()

			// 查询缓存
			var user models.User
			cacheKey := fmt.Sprintf(constants.CacheKeyUserInfo, jwtUser.ID)
			if !uc.GetJSON(rctx, cacheKey, &user) {
				// 查询数据库
				found, err := users.FindByID(rctx, jwtUser.ID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewAPIError(http.StatusUnauthorized, "user not found")
					}
					l.Error("failed to load token user", zap.Uint("id", jwtUser.ID), zap.Error(err))
					return types.NewAPIError(http.StatusInternalServerError, "")
				}
				user = *found

				// 加入缓存，方便下一次查询
				uc.SetJSON(rctx, cacheKey, &user, constants.CacheExpireUserInfo)
			}

			// 设置 context
			c.Set(constants.ContextKeyUser, &user)

			// 继续处理
			return next(c)
		}
	}
}

// CurrentUser 取出 UserAuth 放入的用户，没有经过 UserAuth 时返回 nil
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(constants.ContextKeyUser).(*models.User)
	return user
}
