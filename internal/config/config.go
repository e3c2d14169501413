// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .ksctl.yaml / ~/.ksctl.yaml / /etc/ksctl/config.yaml / config.yaml / config/config.yaml
//  3. 环境变量 - KS_ 前缀，如 KS_DB_DSN
//  4. 命令行覆盖 - --config:db.dsn=... 形式的嵌套选项
package config

// Config 应用配置。
type Config struct {
	Debug bool      `json:"debug" desc:"调试日志"`
	DB    DBConfig  `json:"db" desc:"数据库配置"`
	Log   LogConfig `json:"log" desc:"日志配置"`
}

// DBConfig 数据库配置。
type DBConfig struct {
	DSN         string `json:"dsn" desc:"数据源，如 sqlite:data/ks.db 或 pgsql:host=localhost;dbname=ks"`
	User        string `json:"user" desc:"数据库用户"`
	Password    string `json:"password" desc:"数据库密码"`
	TablePrefix string `json:"table-prefix" desc:"表名前缀"`
}

// LogConfig 日志配置。
type LogConfig struct {
	File       string `json:"file" desc:"日志文件，相对路径基于安装根目录；为空时不写文件"`
	Format     string `json:"format" desc:"日志格式 text|json"`
	MaxSize    int    `json:"max-size" desc:"单个日志文件大小上限 (MB)"`
	MaxBackups int    `json:"max-backups" desc:"保留的旧日志文件数"`
	MaxAge     int    `json:"max-age" desc:"旧日志保留天数"`
	Compress   bool   `json:"compress" desc:"压缩旧日志"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		DB: DBConfig{
			TablePrefix: "ks_",
		},
		Log: LogConfig{
			File:       "logs/cli.log",
			Format:     "text",
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
		},
	}
}
