// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	errInvalidPort      = errors.New("config: invalid PORT number")
	errInvalidTimeout   = errors.New("config: timeouts must be positive")
	errMissingModel     = errors.New("config: MODEL_PATH is required")
	errInvalidLogFormat = errors.New("config: LOG_FORMAT must be json or text")
)

// Config holds all application configuration.
type Config struct {
	Port      string `yaml:"port"`
	BindAddr  string `yaml:"bind_addr"`
	LocalOnly bool   `yaml:"local_only"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ModelPath    string `yaml:"model_path"`
	FeaturesPath string `yaml:"features_path"`

	GoogleAPIKey     string `yaml:"google_api_key"`
	VirusTotalAPIKey string `yaml:"virustotal_api_key"`

	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	ReputationTimeout time.Duration `yaml:"reputation_timeout"`

	WhoisEnabled bool          `yaml:"whois_enabled"`
	WhoisTimeout time.Duration `yaml:"whois_timeout"`
}

func defaults() Config {
	return Config{
		Port:              "5000",
		BindAddr:          "127.0.0.1",
		LocalOnly:         true,
		LogLevel:          "INFO",
		LogFormat:         "json",
		ModelPath:         "model.yaml",
		FetchTimeout:      5 * time.Second,
		ReputationTimeout: 6 * time.Second,
		WhoisTimeout:      5 * time.Second,
	}
}

// Load reads .env into the environment, then the YAML file named by
// APP_CONFIG_PATH (config.yaml by default, skipped when absent), then lets
// environment variables override both.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if err := cfg.readFile(getEnv("APP_CONFIG_PATH", "config.yaml")); err != nil {
		return Config{}, err
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.BindAddr = getEnv("BIND_ADDR", cfg.BindAddr)
	cfg.LocalOnly = getEnvAsBool("LOCAL_ONLY", cfg.LocalOnly)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.ModelPath = getEnv("MODEL_PATH", cfg.ModelPath)
	cfg.FeaturesPath = getEnv("FEATURES_PATH", cfg.FeaturesPath)
	cfg.GoogleAPIKey = getEnv("GOOGLE_API_KEY", cfg.GoogleAPIKey)
	cfg.VirusTotalAPIKey = getEnv("VIRUSTOTAL_API_KEY", cfg.VirusTotalAPIKey)
	cfg.FetchTimeout = getEnvAsDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.ReputationTimeout = getEnvAsDuration("REPUTATION_TIMEOUT", cfg.ReputationTimeout)
	cfg.WhoisEnabled = getEnvAsBool("WHOIS_ENABLED", cfg.WhoisEnabled)
	cfg.WhoisTimeout = getEnvAsDuration("WHOIS_TIMEOUT", cfg.WhoisTimeout)

	return cfg, cfg.validate()
}

// Addr is the listen address.
func (c Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.FetchTimeout <= 0 || c.ReputationTimeout <= 0 || c.WhoisTimeout <= 0 {
		return fmt.Errorf("%w: fetch %s, reputation %s, whois %s",
			errInvalidTimeout, c.FetchTimeout, c.ReputationTimeout, c.WhoisTimeout)
	}

	if c.ModelPath == "" {
		return errMissingModel
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: got %q", errInvalidLogFormat, c.LogFormat)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
