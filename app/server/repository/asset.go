package repository

import (
	"context"
	"crowdfunding-backend/app/server/models"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assets struct {
	db *gorm.DB
}

func NewAssets(db *gorm.DB) *Assets {
	return &Assets{db: db}
}

func (r *Assets) Create(ctx context.Context, asset *models.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("create asset: %w", translate(err))
	}
	return nil
}

func (r *Assets) FindByKey(ctx context.Context, key uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, `"key" = ?`, key).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}
