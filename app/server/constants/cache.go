package constants

import "time"

const (
	CacheKeyUserInfo      = "crowdfunding:user:info:%d"
	CacheKeyProjectDetail = "crowdfunding:project:detail:%d"
)

const (
	CacheExpireUserInfo      = 1 * time.Hour
	CacheExpireProjectDetail = 10 * time.Minute
)
