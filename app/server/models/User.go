package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	// 登录相关
	Email    string `gorm:"column:email;uniqueIndex"` // 邮箱，全局唯一，用于登录
	Password string `gorm:"column:password" json:"-"` // 密码，使用 argon2id 储存，不参与序列化（也就不会进入缓存）

	// 个人资料
	Nickname string         `gorm:"column:nickname"`         // 显示名称
	Avatar   string         `gorm:"column:avatar"`           // 头像地址
	Bio      string         `gorm:"column:bio"`              // 个人简介
	Links    pq.StringArray `gorm:"column:links;type:text[]"` // 个人主页上展示的外部链接

	Projects []Project `gorm:"foreignKey:UserID" json:"-"`
}
