package models

import (
	"encoding/json"
	"gorm.io/gorm"
	"time"
)

type Project struct {
	gorm.Model

	// 项目基础信息
	Title       string `gorm:"column:title"`        // 标题
	Summary     string `gorm:"column:summary"`      // 摘要
	Cover       string `gorm:"column:cover"`        // 封面图地址
	FullContent string `gorm:"column:full_content"` // 完整介绍

	// 募资信息
	TotalAmount int64     `gorm:"column:total_amount"`     // 目标金额
	StartTime   time.Time `gorm:"column:start_time;index"` // 开始时间
	EndTime     time.Time `gorm:"column:end_time;index"`   // 结束时间

	// 结构不固定的部分，原样保存
	ProjectTeam json.RawMessage `gorm:"column:project_team;type:jsonb"` // 团队介绍
	FAQ         json.RawMessage `gorm:"column:faq;type:jsonb"`          // 常见问题

	// 关联
	CategoryID uint `gorm:"column:category_id;index"` // 所属分类
	UserID     uint `gorm:"column:user_id;index"`     // 发起人

	Category Category      `gorm:"foreignKey:CategoryID"`
	User     *User         `gorm:"foreignKey:UserID" json:"-"`
	Plans    []ProjectPlan `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
