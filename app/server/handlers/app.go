package handlers

import (
	"context"
	"crowdfunding-backend/app/server/cache"
	"crowdfunding-backend/app/server/jwt"
	"crowdfunding-backend/app/server/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type CategoryStore interface {
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	FindWithPlans(ctx context.Context, id uint) (*models.Project, error)
	CreatePlan(ctx context.Context, plan *models.ProjectPlan) error
	Update(ctx context.Context, project *models.Project, fields map[string]any, plans []models.ProjectPlan, replacePlans bool) error
}

type AssetStore interface {
	Create(ctx context.Context, asset *models.Asset) error
	FindByKey(ctx context.Context, key uuid.UUID) (*models.Asset, error)
}

type Stores struct {
	Users      UserStore
	Categories CategoryStore
	Projects   ProjectStore
	Assets     AssetStore
}

type App struct {
	l          *zap.Logger   // 日志
	users      UserStore     // 用户
	categories CategoryStore // 分类
	projects   ProjectStore  // 项目与方案
	assets     AssetStore    // 上传的文件
	cache      *cache.Cache  // Redis 缓存，未配置时为空操作
	jwt        *jwt.JWT      // JWT ，用于无状态验证
}

func NewApp(l *zap.Logger, stores Stores, c *cache.Cache, j *jwt.JWT) *App {
	return &App{
		l:          l,
		users:      stores.Users,
		categories: stores.Categories,
		projects:   stores.Projects,
		assets:     stores.Assets,
		cache:      c,
		jwt:        j,
	}
}
