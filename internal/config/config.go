package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Flow      FlowConfig      `mapstructure:"flow"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ConfigPath string `mapstructure:"-"`
}

type ServerConfig struct {
	Port        string
	Mode        string
	WatchConfig bool `mapstructure:"watch_config"`
}

type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	Path      string // sqlite 文件路径
	LogLevel  string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// FlowConfig 答题提交流程配置
type FlowConfig struct {
	LockSubmissions bool          `mapstructure:"lock_submissions"`
	LockTTL         time.Duration `mapstructure:"lock_ttl_seconds"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.path", "data/emotest.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("flow.lock_ttl_seconds", 10)
}

// LoadConfig 读取 path 目录下的 config.yaml，环境变量优先。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("EMOTEST")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("database.path", "DATABASE_PATH")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时只使用默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Flow.LockTTL = cfg.Flow.LockTTL * time.Second
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Database.Driver == DriverSQLite {
		if dir := filepath.Dir(cfg.Database.Path); dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				os.MkdirAll(dir, 0755)
			}
		}
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("database host and dbname are required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Flow.LockSubmissions && !c.Redis.Enabled {
		return fmt.Errorf("flow.lock_submissions requires redis.enabled")
	}

	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit values must be positive")
	}

	return nil
}
