package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Listing   ListingConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
}

// ListingConfig holds the cleaning and brand detection settings
type ListingConfig struct {
	ProductColumn      string `mapstructure:"product_column"`
	MinFrequency       int    `mapstructure:"min_frequency"`
	MaxCandidates      int    `mapstructure:"max_candidates"`
	FallbackCandidates int    `mapstructure:"fallback_candidates"`
	TokensPerProduct   int    `mapstructure:"tokens_per_product"`
	HeaderMinCells     int    `mapstructure:"header_min_cells"`
	Language           string `mapstructure:"language"` // "ar" or "en"
	PreviewRows        int    `mapstructure:"preview_rows"`
	EnableDebugLogging bool   `mapstructure:"enable_debug_logging"`
}

// StoreConfig holds settings for produced workbooks kept for download
type StoreConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sallamerger/")

	// Environment variable settings
	v.SetEnvPrefix("SALLAMERGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if one exists.
// Variables already set in the environment are not overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "app://*"})
	v.SetDefault("server.max_upload_mb", 20)

	// Listing defaults
	v.SetDefault("listing.product_column", "المنتج")
	v.SetDefault("listing.min_frequency", 2)
	v.SetDefault("listing.max_candidates", 50)
	v.SetDefault("listing.fallback_candidates", 10)
	v.SetDefault("listing.tokens_per_product", 3)
	v.SetDefault("listing.header_min_cells", 3)
	v.SetDefault("listing.language", "ar")
	v.SetDefault("listing.preview_rows", 20)
	v.SetDefault("listing.enable_debug_logging", false)

	// Store defaults
	v.SetDefault("store.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	l := config.Listing

	if l.ProductColumn == "" {
		return fmt.Errorf("product column must not be empty")
	}

	if l.MinFrequency < 1 {
		return fmt.Errorf("min frequency must be at least 1, got: %d", l.MinFrequency)
	}

	if l.FallbackCandidates < 1 || l.MaxCandidates < l.FallbackCandidates {
		return fmt.Errorf("candidate limits must satisfy max (%d) >= fallback (%d) >= 1", l.MaxCandidates, l.FallbackCandidates)
	}

	if l.TokensPerProduct < 1 {
		return fmt.Errorf("tokens per product must be at least 1, got: %d", l.TokensPerProduct)
	}

	if l.HeaderMinCells < 1 {
		return fmt.Errorf("header min cells must be at least 1, got: %d", l.HeaderMinCells)
	}

	if l.Language != "ar" && l.Language != "en" {
		return fmt.Errorf("language must be 'ar' or 'en', got: %s", l.Language)
	}

	if config.Store.TTL <= 0 {
		return fmt.Errorf("store TTL must be positive, got: %s", config.Store.TTL)
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got: %d", config.Server.MaxUploadMB)
	}

	return nil
}
