package repository

import (
	"context"
	"crowdfunding-backend/app/server/models"
	"fmt"
	"gorm.io/gorm"
)

type Projects struct {
	db *gorm.DB
}

func NewProjects(db *gorm.DB) *Projects {
	return &Projects{db: db}
}

func (r *Projects) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Omit("Category", "User", "Plans").Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", translate(err))
	}
	return nil
}

func (r *Projects) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindWithPlans 连同分类与方案一起取出，方案顺序由调用方决定
func (r *Projects) FindWithPlans(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Plans").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *Projects) CreatePlan(ctx context.Context, plan *models.ProjectPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("create plan: %w", translate(err))
	}
	return nil
}

// Update 在同一个事务里更新项目字段，并在 replacePlans 时删除全部旧方案、写入新方案
func (r *Projects) Update(ctx context.Context, project *models.Project, fields map[string]any, plans []models.ProjectPlan, replacePlans bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(project).Updates(fields).Error; err != nil {
				return fmt.Errorf("update project %d: %w", project.ID, err)
			}
		}

		if !replacePlans {
			return nil
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectPlan{}).Error; err != nil {
			return fmt.Errorf("delete plans of project %d: %w", project.ID, err)
		}

		if len(plans) == 0 {
			return nil
		}

		for i := range plans {
			plans[i].ProjectID = project.ID
		}
		if err := tx.Create(&plans).Error; err != nil {
			return fmt.Errorf("insert plans of project %d: %w", project.ID, err)
		}

		return nil
	})
}
