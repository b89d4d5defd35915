package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PeterLuschny/FigurativePartitions/internal/calculator"
	"github.com/PeterLuschny/FigurativePartitions/internal/logging"
	"github.com/PeterLuschny/FigurativePartitions/internal/puzzle"
	"github.com/PeterLuschny/FigurativePartitions/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultPreviewLength  = 8
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Port                 string
	DefaultTarget        int
	MaxSessions          int
	PreviewLength        int
	LogLevel             string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	EnableMetrics        bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure. Pointers tell
// an explicit zero apart from a missing key.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	DefaultTarget        int           `yaml:"default_target"`
	MaxSessions          int           `yaml:"max_sessions"`
	PreviewLength        int           `yaml:"preview_length"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	EnableMetrics        *bool         `yaml:"enable_metrics"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	DefaultTarget  *string
	MaxSessions    *int
	LogLevel       *string
	EnableMetrics  *bool
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvConfig(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		DefaultTarget:        puzzle.DefaultTarget,
		MaxSessions:          storage.DefaultMaxSessions,
		PreviewLength:        defaultPreviewLength,
		LogLevel:             "info",
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		EnableMetrics:        true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.DefaultTarget > 0 {
		cfg.DefaultTarget = yamlCfg.DefaultTarget
	}
	if yamlCfg.MaxSessions > 0 {
		cfg.MaxSessions = yamlCfg.MaxSessions
	}
	if yamlCfg.PreviewLength > 0 {
		cfg.PreviewLength = yamlCfg.PreviewLength
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	applyDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	applyDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	applyDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	applyDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.EnableMetrics != nil {
		cfg.EnableMetrics = *yamlCfg.EnableMetrics
	}

	if rps := yamlCfg.RateLimit.RPS; rps != nil && *rps >= 0 {
		cfg.RateLimitRPS = *rps
	}
	if burst := yamlCfg.RateLimit.Burst; burst != nil && *burst >= 0 {
		cfg.RateLimitBurst = *burst
	}
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("DEFAULT_TARGET")); raw != "" {
		if target, err := ParseTarget(raw); err == nil {
			cfg.DefaultTarget = target
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_SESSIONS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxSessions = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if raw := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.EnableMetrics = value
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.DefaultTarget != nil && *overrides.DefaultTarget != "" {
		target, err := ParseTarget(*overrides.DefaultTarget)
		if err != nil {
			return fmt.Errorf("parse default target: %w", err)
		}
		cfg.DefaultTarget = target
	}

	if overrides.MaxSessions != nil && *overrides.MaxSessions > 0 {
		cfg.MaxSessions = *overrides.MaxSessions
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.EnableMetrics != nil {
		cfg.EnableMetrics = *overrides.EnableMetrics
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.DefaultTarget <= 0 {
		return fmt.Errorf("default target must be positive")
	}
	if cfg.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive")
	}
	if cfg.PreviewLength < 1 || cfg.PreviewLength > calculator.MaxSequenceLength {
		return fmt.Errorf("preview length must be between 1 and %d", calculator.MaxSequenceLength)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseTarget parses a user-supplied target sum. Only positive integers are
// accepted.
func ParseTarget(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("target must be positive, got %d", value)
	}
	return value, nil
}
