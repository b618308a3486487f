package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "politiekmatcher"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379

	defaultDimensionTextLimit   = 1024
	defaultInferenceTimeoutSec  = 30
	defaultExplanationMaxLength = 4000
)

// Load reads and normalizes the YAML config file at path.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.DSN) == "" {
		c.DSN = c.Database.DSNValue()
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = c.Redis.URLValue()
	}
	if c.Matching.DimensionTextLimit <= 0 {
		c.Matching.DimensionTextLimit = defaultDimensionTextLimit
	}
	if c.Matching.InferenceTimeout <= 0 {
		c.Matching.InferenceTimeout = defaultInferenceTimeoutSec
	}
	if c.Matching.ExplanationMaxLength <= 0 {
		c.Matching.ExplanationMaxLength = defaultExplanationMaxLength
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// InferenceTimeout returns the per-call timeout for external model calls.
func (c *AppConfig) InferenceTimeout() time.Duration {
	return time.Duration(c.Matching.InferenceTimeout) * time.Second
}
