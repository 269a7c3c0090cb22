package models

import "time"

// 方案在更新时会被整体替换，所以不使用软删除
type ProjectPlan struct {
	PlanID    uint `gorm:"column:plan_id;primaryKey"`
	ProjectID uint `gorm:"column:project_id;index;not null"` // 所属项目

	PlanName     string     `gorm:"column:plan_name"`     // 方案名称
	Amount       int64      `gorm:"column:amount"`        // 赞助金额
	Quantity     int64      `gorm:"column:quantity"`      // 限量份数， 0 表示不限
	Feedback     string     `gorm:"column:feedback"`      // 回馈内容
	FeedbackImg  string     `gorm:"column:feedback_img"`  // 回馈图片地址
	DeliveryDate *time.Time `gorm:"column:delivery_date"` // 预计寄送时间

	CreatedAt time.Time
	UpdatedAt time.Time
}
