package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 集中管理服務設定，由 Load 建立後注入各元件
type Config struct {
	AppEnv          string
	Addr            string
	LogMode         string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

const (
	DefaultAccessTokenTTL  = 60 * time.Minute
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// loadDotEnv 可於測試覆寫
var loadDotEnv = func() error { return godotenv.Load() }

// Load 讀取 .env (若存在) 與環境變數並建立 Config
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Addr:            getEnv("HTTP_ADDR", ":8080"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AccessTokenTTL:  DefaultAccessTokenTTL,
		RefreshTokenTTL: DefaultRefreshTokenTTL,
	}
	cfg.LogMode = getEnv("LOG_MODE", cfg.AppEnv)

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr = os.Getenv("REDIS_ADDR"); cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.SecretKey = os.Getenv("SECRET_KEY"); cfg.SecretKey == "" {
		return nil, fmt.Errorf("環境變數 SECRET_KEY 未設定")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("無效的 REDIS_DB: %q", v)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("無效的 ACCESS_TOKEN_EXPIRE_MINUTES: %q", v)
		}
		cfg.AccessTokenTTL = time.Duration(n) * time.Minute
	}
	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("無效的 REFRESH_TOKEN_EXPIRE_DAYS: %q", v)
		}
		cfg.RefreshTokenTTL = time.Duration(n) * 24 * time.Hour
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
