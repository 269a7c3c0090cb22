package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Asset struct {
	gorm.Model

	Key         uuid.UUID `gorm:"column:key;type:uuid;uniqueIndex"` // 对外暴露的标识
	UserID      uint      `gorm:"column:user_id;index"`             // 上传者
	Filename    string    `gorm:"column:filename"`                  // 原始文件名
	ContentType string    `gorm:"column:content_type"`              // 检测出的文件类型
	Size        int64     `gorm:"column:size"`                      // 字节数
	Content     []byte    `gorm:"column:content;type:bytea"`        // 文件内容（二进制）
}
