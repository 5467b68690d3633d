package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from an optional YAML file and
// environment variables. Environment variables win over the file.
type Config struct {
	HTTPPort     string `yaml:"http_port"`
	AppMode      string `yaml:"app_mode"`
	LogLevel     string `yaml:"log_level"`
	FiberPrefork bool   `yaml:"fiber_prefork"`

	APIBaseURL  string        `yaml:"api_base_url"`
	APITimeout  time.Duration `yaml:"api_timeout"`
	APIPageSize int           `yaml:"api_page_size"`

	SessionFile string `yaml:"session_file"`

	OriginLatitude  float64 `yaml:"origin_latitude"`
	OriginLongitude float64 `yaml:"origin_longitude"`

	EffectsBufferSize int `yaml:"effects_buffer_size"`

	ClickHouseAddr     string        `yaml:"clickhouse_addr"`
	ClickHouseDatabase string        `yaml:"clickhouse_database"`
	ClickHouseUser     string        `yaml:"clickhouse_user"`
	ClickHousePassword string        `yaml:"clickhouse_password"`
	JournalBufferSize  int           `yaml:"journal_buffer_size"`
	JournalBatchSize   int           `yaml:"journal_batch_size"`
	JournalFlushEvery  time.Duration `yaml:"journal_flush_every"`
}

// JournalEnabled reports whether actions are persisted to ClickHouse.
func (c *Config) JournalEnabled() bool {
	return c.ClickHouseAddr != ""
}

func defaults() *Config {
	return &Config{
		HTTPPort:           ":8080",
		AppMode:            "dev",
		LogLevel:           "info",
		APIBaseURL:         "http://localhost:8080/api/v1",
		APITimeout:         10 * time.Second,
		APIPageSize:        100,
		SessionFile:        "session.json",
		OriginLatitude:     52.2297,
		OriginLongitude:    21.0122,
		EffectsBufferSize:  64,
		ClickHouseDatabase: "default",
		ClickHouseUser:     "default",
		JournalBufferSize:  1024,
		JournalBatchSize:   100,
		JournalFlushEvery:  5 * time.Second,
	}
}

// Load reads CONFIG_FILE (if set) and then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.AppMode = strings.ToLower(getEnv("APP_MODE", cfg.AppMode))
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.FiberPrefork = parseBoolEnv("FIBER_PREFORK", cfg.FiberPrefork)
	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", cfg.APIBaseURL), "/")
	cfg.APITimeout = parseDurationEnv("API_TIMEOUT", cfg.APITimeout)
	cfg.APIPageSize = parseIntEnv("API_PAGE_SIZE", cfg.APIPageSize)
	cfg.SessionFile = getEnv("SESSION_FILE", cfg.SessionFile)
	cfg.OriginLatitude = parseFloatEnv("ORIGIN_LATITUDE", cfg.OriginLatitude)
	cfg.OriginLongitude = parseFloatEnv("ORIGIN_LONGITUDE", cfg.OriginLongitude)
	cfg.EffectsBufferSize = parseIntEnv("EFFECTS_BUFFER_SIZE", cfg.EffectsBufferSize)
	cfg.ClickHouseAddr = getEnv("CLICKHOUSE_ADDR", cfg.ClickHouseAddr)
	cfg.ClickHouseDatabase = getEnv("CLICKHOUSE_DATABASE", cfg.ClickHouseDatabase)
	cfg.ClickHouseUser = getEnv("CLICKHOUSE_USER", cfg.ClickHouseUser)
	cfg.ClickHousePassword = getEnv("CLICKHOUSE_PASSWORD", cfg.ClickHousePassword)
	cfg.JournalBufferSize = parseIntEnv("JOURNAL_BUFFER_SIZE", cfg.JournalBufferSize)
	cfg.JournalBatchSize = parseIntEnv("JOURNAL_BATCH_SIZE", cfg.JournalBatchSize)
	cfg.JournalFlushEvery = parseDurationEnv("JOURNAL_FLUSH_EVERY", cfg.JournalFlushEvery)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.OriginLatitude < -90 || c.OriginLatitude > 90 {
		return fmt.Errorf("ORIGIN_LATITUDE must be within [-90, 90]")
	}
	if c.OriginLongitude < -180 || c.OriginLongitude > 180 {
		return fmt.Errorf("ORIGIN_LONGITUDE must be within [-180, 180]")
	}
	if c.APIPageSize <= 0 {
		return fmt.Errorf("API_PAGE_SIZE must be positive")
	}
	if c.EffectsBufferSize < 0 {
		return fmt.Errorf("EFFECTS_BUFFER_SIZE must not be negative")
	}
	if c.JournalBufferSize < 0 {
		return fmt.Errorf("JOURNAL_BUFFER_SIZE must not be negative")
	}
	if c.JournalEnabled() && (c.JournalBatchSize <= 0 || c.JournalFlushEvery <= 0) {
		return fmt.Errorf("JOURNAL_BATCH_SIZE and JOURNAL_FLUSH_EVERY must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatEnv(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
