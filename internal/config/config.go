package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	DBMaxConns      int32
	RedisAddr       string
	ShutdownTimeout time.Duration

	ShopDomain      string
	StorefrontToken string
	AdminToken      string
	APIVersion      string

	AllowedOrigins []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
// DB_DSN and REDIS_ADDR are optional; empty values disable the local inquiry
// log and fall back to in-memory rate limiting and caching.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		DBMaxConns:      envInt32("DB_MAX_CONNS", 8),
		RedisAddr:       envOrDefault("REDIS_ADDR", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		ShopDomain:      envOrDefault("SHOP_DOMAIN", ""),
		StorefrontToken: envOrDefault("SHOP_STOREFRONT_TOKEN", ""),
		AdminToken:      envOrDefault("SHOP_ADMIN_TOKEN", ""),
		APIVersion:      envOrDefault("SHOP_API_VERSION", ""),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", nil),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt32(key string, def int32) int32 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err == nil && n > 0 {
			return int32(n)
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
