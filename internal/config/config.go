package config

import (
	"os"
	"time"
)

type Config struct {
	APIURL     string
	APIKey     string
	Timeout    time.Duration
	ConfigPath string
	LogLevel   string
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:     getEnv("PATRONUS_API_URL", "http://localhost:8080"),
		APIKey:     getEnv("PATRONUS_API_KEY", ""),
		Timeout:    getEnvDuration("PATRONUS_TIMEOUT", 30*time.Second),
		ConfigPath: getEnv("PATRONUS_CONFIG_PATH", "/etc/patronus/config"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
