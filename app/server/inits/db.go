package inits

import (
	"crowdfunding-backend/app/server/models"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 首次启动时写入的分类
var initialCategories = []string{
	"Technology",
	"Design",
	"Film & Video",
	"Music",
	"Publishing",
	"Games",
	"Food",
	"Education",
	"Social Good",
	"Arts",
}

func DB(conn string, debugMode bool) (db *gorm.DB, err error) {
	logLevel := logger.Warn
	if debugMode {
		logLevel = logger.Info
	}

	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Project{},
		&models.ProjectPlan{},
		&models.Asset{},
	)
}

func initData(db *gorm.DB) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化分类
	if err = db.Model(&models.Category{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get category count: %w", err)
	} else if counter == 0 { // 没有任何分类，添加初始分类
		categories := make([]*models.Category, 0, len(initialCategories))
		for _, name := range initialCategories {
			categories = append(categories, &models.Category{Name: name})
		}

		// 插入记录
		if err = db.Create(categories).Error; err != nil {
			return fmt.Errorf("failed to create initial categories: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
