package handlers

import (
	"crowdfunding-backend/app/server/constants"
	"crowdfunding-backend/app/server/metrics"
	"crowdfunding-backend/app/server/middlewares"
	"crowdfunding-backend/app/server/models"
	"crowdfunding-backend/app/server/repository"
	"crowdfunding-backend/app/server/types"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

func (a *App) userMapFields(req *types.ProfileUpdateRequest, user *models.User) {
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Links != nil {
		user.Links = *req.Links
	}
}

func userProfile(user *models.User) types.UserProfile {
	links := []string(user.Links)
	if links == nil {
		links = []string{}
	}

	return types.UserProfile{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Bio:      user.Bio,
		Links:    links,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *App) UserSignup(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定并校验请求体
	var req types.SignupRequest
	if err := a.bindAndValidate(c, &req); err != nil {
		metrics.IncrementAuthAttempt("signup", "failed")
		return err
	}
	email := normalizeEmail(req.Email)

	// 邮箱不能重复
	if exists, err := a.users.ExistsByEmail(rctx, email); err != nil {
		a.l.Error("failed to check email", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	} else if exists {
		metrics.IncrementAuthAttempt("signup", "failed")
		return a.erFields(http.StatusBadRequest, "email already registered", "email")
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 创建用户
	user := models.User{
		Email:    email,
		Password: passwordHash,
		Nickname: req.Nickname,
	}
	if err = a.users.Create(rctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			// 并发注册，被唯一索引拦下
			metrics.IncrementAuthAttempt("signup", "failed")
			return a.erFields(http.StatusBadRequest, "email already registered", "email")
		}
		a.l.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 签出 JWT
	token, err := a.issueToken(user.ID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	metrics.IncrementAuthAttempt("signup", "success")

	return a.ok(c, http.StatusCreated, &types.AuthToken{
		Token: token,
		User:  userProfile(&user),
	})
}

func (a *App) UserSignin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定并校验请求体
	var req types.SigninRequest
	if err := a.bindAndValidate(c, &req); err != nil {
		metrics.IncrementAuthAttempt("signin", "failed")
		return err
	}

	user, err := a.users.FindByEmail(rctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.IncrementAuthAttempt("signin", "failed")
			return a.er(http.StatusBadRequest, "invalid email or password")
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	} else if !match {
		// 密码不一致
		metrics.IncrementAuthAttempt("signin", "failed")
		return a.er(http.StatusBadRequest, "invalid email or password")
	}

	// 签出 JWT
	token, err := a.issueToken(user.ID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	metrics.IncrementAuthAttempt("signin", "success")

	return a.ok(c, http.StatusOK, &types.AuthToken{
		Token: token,
		User:  userProfile(user),
	})
}

func (a *App) UserStatus(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(http.StatusUnauthorized, "invalid or missing token")
	}

	return a.ok(c, http.StatusOK, userProfile(user))
}

func (a *App) UserProfileGet(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(http.StatusUnauthorized, "invalid or missing token")
	}

	return a.ok(c, http.StatusOK, userProfile(user))
}

func (a *App) UserProfileUpdate(c echo.Context) error {
	rctx := c.Request().Context()
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(http.StatusUnauthorized, "invalid or missing token")
	}

	// 绑定并校验请求体
	var req types.ProfileUpdateRequest
	if err := a.bindAndValidate(c, &req); err != nil {
		return err
	}

	a.userMapFields(&req, user)

	// 更新用户信息
	if err := a.users.UpdateProfile(rctx, user); err != nil {
		a.l.Error("failed to update user", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 清理中间件使用的用户缓存
	a.cache.Del(rctx, fmt.Sprintf(constants.CacheKeyUserInfo, user.ID))

	return a.ok(c, http.StatusOK, userProfile(user))
}
