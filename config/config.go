package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort   string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration

	// AnyAuthCanDeleteComments keeps the permissive moderation model:
	// every logged-in user may delete every comment. Turning it off
	// restricts deletion to the comment's own author.
	AnyAuthCanDeleteComments bool
}

func Load() *Config {
	return &Config{
		AppPort:                  getEnv("APP_PORT", ":8080"),
		DBPath:                   getEnv("DB_PATH", "./blog.db"),
		JWTSecret:                getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),
		TokenTTL:                 getDuration("TOKEN_TTL", 7*24*time.Hour),
		AnyAuthCanDeleteComments: getBool("ANY_AUTH_CAN_DELETE_COMMENTS", true),
	}
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
