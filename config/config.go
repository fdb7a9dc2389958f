package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`
	// SessionMaxAge is the session cookie lifetime in seconds
	SessionMaxAge int `yaml:"session_max_age"`

	ImageStore ImageStoreConfig `yaml:"image_store"`
	// WebhookURL receives a fire-and-forget POST after each stored image
	WebhookURL string `yaml:"webhook_url"`
}

type ImageStoreConfig struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

func defaults() Config {
	return Config{
		Port:          "8080",
		DBPath:        "menuboard.db",
		JWTSecret:     "menuboard_dev_secret",
		SessionMaxAge: 24 * 60 * 60,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Load reads the optional YAML config file, then applies env overrides.
// A missing file is not an error; env always wins.
func Load(path string) Config {
	cfg := defaults()

	if b, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(b, &cfg)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", cfg.SessionMaxAge)
	cfg.ImageStore.BaseURL = getEnv("IMAGE_STORE_URL", cfg.ImageStore.BaseURL)
	cfg.ImageStore.TokenURL = getEnv("IMAGE_STORE_TOKEN_URL", cfg.ImageStore.TokenURL)
	cfg.ImageStore.ClientID = getEnv("IMAGE_STORE_CLIENT_ID", cfg.ImageStore.ClientID)
	cfg.ImageStore.ClientSecret = getEnv("IMAGE_STORE_CLIENT_SECRET", cfg.ImageStore.ClientSecret)
	cfg.WebhookURL = getEnv("WEBHOOK_URL", cfg.WebhookURL)

	return cfg
}
