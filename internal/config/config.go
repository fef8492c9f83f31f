package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/logger"
	"xray-tracker/internal/validation"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	ProfileSourceSQLite = "sqlite"
	ProfileSourceRemote = "remote"
)

type Config struct {
	DBPath             string `json:"DB_PATH" validate:"required"`
	ServerPort         string `json:"SERVER_PORT" validate:"required,numeric"`
	LogLevel           string `json:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	ProfileSource      string `json:"PROFILE_SOURCE" validate:"oneof=sqlite remote"`
	ProfileAPIURL      string `json:"PROFILE_API_URL" validate:"required_if=ProfileSource remote,omitempty,url"`
	ProfileAPIKey      string `json:"PROFILE_API_KEY"`
	ShadowDefaultLimit int    `json:"SHADOW_DEFAULT_LIMIT" validate:"gte=1,lte=25"`
	ApexTier           string `json:"APEX_TIER" validate:"required"`
	RequestTimeout     time.Duration
}

func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	limit, err := strconv.Atoi(getEnv("SHADOW_DEFAULT_LIMIT", strconv.Itoa(constants.DefaultShadowLimit)))
	if err != nil {
		return nil, fmt.Errorf("SHADOW_DEFAULT_LIMIT must be an integer: %w", err)
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "xray.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ProfileSource:      getEnv("PROFILE_SOURCE", ProfileSourceSQLite),
		ProfileAPIURL:      getEnv("PROFILE_API_URL", ""),
		ProfileAPIKey:      getEnv("PROFILE_API_KEY", ""),
		ShadowDefaultLimit: limit,
		ApexTier:           getEnv("APEX_TIER", "MASTER"),
		RequestTimeout:     constants.RequestTimeout,
	}

	if err := validation.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("profile_source", cfg.ProfileSource).
		Int("shadow_default_limit", cfg.ShadowDefaultLimit).
		Str("apex_tier", cfg.ApexTier).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
