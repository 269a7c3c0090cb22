package inits

import (
	"crowdfunding-backend/app/server/config"
	"errors"
	"fmt"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"io/fs"
)

func Config() (*config.Config, error) {
	// 本地开发时允许使用 .env 文件，不存在也没关系
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// 环境变量映射到结构体
	cfg := &config.Config{}
	if err := envdecode.StrictDecode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if cfg.Security.AuthRateLimit <= 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be positive, got %v", cfg.Security.AuthRateLimit)
	}

	return cfg, nil
}
