package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Redis       RedisConfig
	DoorDash    DoorDashConfig
	OpenAI      OpenAIConfig
	TaxRate     string // decimal string, e.g. "0.0851"; parsed by the cart service
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig configures the optional catalog read cache.
// An empty Addr disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// DoorDashConfig holds DoorDash Drive credentials and request settings.
// The three credential fields are validated by doordash.NewAuthenticator,
// not here, so commands that never call DoorDash can run without them.
type DoorDashConfig struct {
	DeveloperID   string
	KeyID         string
	SigningSecret string // base64url-encoded, from the developer portal
	BaseURL       string
	Audience      string
	TokenTTL      time.Duration
}

// OpenAIConfig configures the conversational ordering agent. An empty APIKey
// leaves the chat endpoint registered but failing with a configuration error,
// matching how missing DoorDash credentials behave for delivery calls.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TAX_RATE", "0.0851")
	viper.SetDefault("REDIS_CACHE_TTL", "5m")
	viper.SetDefault("DOORDASH_API_BASE_URL", "https://openapi.doordash.com/drive/v2")
	viper.SetDefault("DOORDASH_JWT_AUDIENCE", "doordash")
	viper.SetDefault("DOORDASH_JWT_TTL", "30m")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cacheTTL, err := time.ParseDuration(getEnvOrViper("REDIS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_CACHE_TTL: %w", err)
	}
	tokenTTL, err := time.ParseDuration(getEnvOrViper("DOORDASH_JWT_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOORDASH_JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "danomnoms"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getEnvOrViper("REDIS_ADDR", "")),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: cacheTTL,
		},
		DoorDash: DoorDashConfig{
			DeveloperID:   strings.TrimSpace(getEnvOrViper("DOORDASH_DEVELOPER_ID", "")),
			KeyID:         strings.TrimSpace(getEnvOrViper("DOORDASH_KEY_ID", "")),
			SigningSecret: strings.TrimSpace(getEnvOrViper("DOORDASH_SIGNING_SECRET", "")),
			BaseURL:       strings.TrimSuffix(getEnvOrViper("DOORDASH_API_BASE_URL", "https://openapi.doordash.com/drive/v2"), "/"),
			Audience:      getEnvOrViper("DOORDASH_JWT_AUDIENCE", "doordash"),
			TokenTTL:      tokenTTL,
		},
		OpenAI: OpenAIConfig{
			APIKey: strings.TrimSpace(getEnvOrViper("OPEN_AI_API_KEY", "")),
			Model:  getEnvOrViper("OPENAI_MODEL", "gpt-4o-mini"),
		},
		TaxRate: getEnvOrViper("TAX_RATE", "0.0851"),
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
