package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"GO_ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Redis (optional; catalog cache is skipped when unset)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Badge engine
	CatalogCacheTTL  time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	SweepConcurrency int           `mapstructure:"SWEEP_CONCURRENCY"`
	SweepBatchSize   int           `mapstructure:"SWEEP_BATCH_SIZE"`

	// R2 / S3 (badge artwork)
	R2AccountID       string `mapstructure:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `mapstructure:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `mapstructure:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `mapstructure:"R2_BUCKET_NAME"`
	R2PublicURL       string `mapstructure:"R2_PUBLIC_URL"`
}

var keys = []string{
	"GO_ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "FRONTEND_URL",
	"REDIS_ADDR", "REDIS_PASSWORD",
	"CATALOG_CACHE_TTL", "SWEEP_CONCURRENCY", "SWEEP_BATCH_SIZE",
	"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_URL",
}

// LoadConfig reads the .env file at path (if any) and the environment.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")
	v.SetDefault("SWEEP_CONCURRENCY", 8)
	v.SetDefault("SWEEP_BATCH_SIZE", 200)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// SetConfigFile surfaces a plain fs error instead of ConfigFileNotFoundError
	return strings.Contains(err.Error(), "no such file")
}

// Validate checks the values the badge engine cannot run without.
func (c Config) Validate() error {
	if c.SweepConcurrency < 1 {
		return fmt.Errorf("SWEEP_CONCURRENCY must be at least 1, got %d", c.SweepConcurrency)
	}
	if c.SweepBatchSize < 1 {
		return fmt.Errorf("SWEEP_BATCH_SIZE must be at least 1, got %d", c.SweepBatchSize)
	}
	if c.CatalogCacheTTL < 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// R2Enabled reports whether badge artwork uploads can be served.
func (c Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}
