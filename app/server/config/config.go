package config

import "strings"

type Config struct {
	System struct {
		Mode                  string `env:"MODE,default=development"` // 运行模式，以 p 开头视为生产环境
		Listen                string `env:"LISTEN,default=:1323"`     // 监听地址
		DBConnectionString    string `env:"DB_CONN,required"`         // Postgres 数据库的连接字符串
		RedisConnectionString string `env:"REDIS_CONN"`               // Redis 连接 URL ，留空则不使用缓存
		StaticDir             string `env:"STATIC_DIR"`               // 静态文件目录，挂载在 /static 下
		LogFile               string `env:"LOG_FILE"`                 // 日志文件路径，留空则只输出到标准输出
	}
	Security struct {
		SignatureSecretKey string  `env:"SIGNATURE_SECRET_KEY,required"` // 签名密钥，用于签发 JWT ，更新会导致旧有会话失效
		AuthRateLimit      float64 `env:"AUTH_RATE_LIMIT,default=5"`     // 注册与登录接口每个 IP 每秒允许的请求数
	}
}

func (c *Config) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(c.System.Mode), "p")
}
