package models

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex"` // 分类名称
}
