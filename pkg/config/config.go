package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	CatalogURL     string
	CatalogLimit   int
	CatalogTimeout time.Duration

	// file, postgres or redis
	StorageDriver string
	CartFile      string
	DatabaseURL   string
	RedisAddr     string
	RedisDB       int
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		CatalogURL:     getEnv("CATALOG_URL", "https://dummyjson.com"),
		CatalogLimit:   getEnvInt("CATALOG_LIMIT", 12),
		CatalogTimeout: time.Duration(getEnvInt("CATALOG_TIMEOUT_SECONDS", 10)) * time.Second,

		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		CartFile:      getEnv("CART_FILE", "carrito.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
