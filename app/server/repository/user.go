package repository

import (
	"context"
	"crowdfunding-backend/app/server/models"
	"fmt"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (r *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail 用于注册前的检查，唯一索引兜底并发注册
func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count user by email: %w", err)
	}
	return count > 0, nil
}

func (r *Users) UpdateProfile(ctx context.Context, user *models.User) error {
	// 用 Select 明确列出资料字段，这样空字符串也能写入
	if err := r.db.WithContext(ctx).
		Model(user).
		Select("nickname", "avatar", "bio", "links").
		Updates(user).Error; err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}
