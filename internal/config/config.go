package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName              string
	AppEnv               string
	AppPort              string
	DatabaseURL          string
	RedisURL             string
	NATSAddr             string
	EventSubjectPrefix   string
	JWTSecret            string
	BadgeCacheTTL        time.Duration
	ApprovalPollInterval time.Duration
	SeedEnabled          bool
	SeedToken            string
	SubmitRateLimit      int
	SubmitRateWindow     time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TalentBridge API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("events.subject_prefix", "bridge")
	v.SetDefault("badge.cache_ttl", "1m")
	v.SetDefault("approval.poll_interval", "10s")
	v.SetDefault("submit.rate_limit", 5)
	v.SetDefault("submit.rate_window", "10s")

	badgeTTL, err := time.ParseDuration(v.GetString("badge.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid badge cache ttl: %w", err)
	}

	pollInterval, err := time.ParseDuration(v.GetString("approval.poll_interval"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid approval poll interval: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("submit.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid submit rate window: %w", err)
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		DatabaseURL:          v.GetString("database.url"),
		RedisURL:             v.GetString("redis.url"),
		NATSAddr:             v.GetString("nats.addr"),
		EventSubjectPrefix:   v.GetString("events.subject_prefix"),
		JWTSecret:            v.GetString("jwt.secret"),
		BadgeCacheTTL:        badgeTTL,
		ApprovalPollInterval: pollInterval,
		SeedEnabled:          v.GetBool("seed.enabled"),
		SeedToken:            v.GetString("seed.token"),
		SubmitRateLimit:      v.GetInt("submit.rate_limit"),
		SubmitRateWindow:     rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
