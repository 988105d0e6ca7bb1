package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config groups application settings, read from environment variables with
// an optional .env file for local development.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Minio    MinioConfig
	LowStock LowStockConfig
}

type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

type HTTPConfig struct {
	Host string
	Port int
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DBConfig struct {
	URL string
}

type JWTConfig struct {
	Secret            string
	ExpirationMinutes int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LowStockConfig drives the periodic low-stock alert scan.
type LowStockConfig struct {
	Enabled         bool
	Threshold       int
	IntervalMinutes int
}

// Load reads configuration from env vars (and .env when present). Env vars
// take priority over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // optional

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", "product-images")
	v.SetDefault("LOW_STOCK_ALERTS", false)
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("LOW_STOCK_INTERVAL_MINUTES", 60)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			ExpirationMinutes: v.GetInt("JWT_EXPIRATION_MINUTES"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		LowStock: LowStockConfig{
			Enabled:         v.GetBool("LOW_STOCK_ALERTS"),
			Threshold:       v.GetInt("LOW_STOCK_THRESHOLD"),
			IntervalMinutes: v.GetInt("LOW_STOCK_INTERVAL_MINUTES"),
		},
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}
