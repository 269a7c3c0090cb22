package constants

import "time"

const (
	AuthTokenDuration = 7 * 24 * time.Hour

	// 认证中间件把解析后的 token 和用户分别放在 context 的这两个 key 下
	ContextKeyToken = "jwt"
	ContextKeyUser  = "user"
)
