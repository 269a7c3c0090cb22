package handlers

import (
	"crowdfunding-backend/app/server/middlewares"
	"github.com/labstack/echo/v4"
)

// Setup 注册路由、校验器与统一错误处理
func (a *App) Setup(e *echo.Echo, authRateLimit float64) {
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = a.HTTPErrorHandler

	auth := middlewares.UserAuth(a.jwt, a.users, a.cache, a.l)
	authLimiter := middlewares.AuthRateLimiter(authRateLimit)

	e.GET("/healthcheck", a.HealthCheck)

	v1 := e.Group("/api/v1")

	// 用户
	users := v1.Group("/users")
	users.POST("/signup", a.UserSignup, authLimiter)
	users.POST("/signin", a.UserSignin, authLimiter)
	users.POST("/status", a.UserStatus, auth)
	users.GET("/profile", a.UserProfileGet, auth)
	users.PATCH("/profile", a.UserProfileUpdate, auth)

	// 分类
	v1.GET("/categories", a.CategoryList)

	// 项目（创建项目的 token 在 handler 内解析）
	projects := v1.Group("/projects")
	projects.POST("", a.ProjectCreate)
	projects.GET("/:project_id", a.ProjectInfoGet)
	projects.PATCH("/:project_id", a.ProjectInfoUpdate, auth)
	projects.POST("/:project_id/plans", a.PlanCreate)

	// 上传
	uploads := v1.Group("/uploads")
	uploads.POST("", a.AssetUpload, auth)
	uploads.GET("/:key", a.AssetDownload)
}
