package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration. It is loaded once in main and
// injected into each component; nothing else reads the environment.
type Config struct {
	Port        string
	Environment string
	// BaseDir is the root of the image tree: pool images live directly
	// in it, picks and trash in subdirectories.
	BaseDir     string
	SecretKey   string
	Password    string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	CORSOrigins string
	LogDir      string
	LogMaxFiles int
}

// fileConfig mirrors Config for the optional YAML overlay. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	Port        *string `yaml:"port"`
	Environment *string `yaml:"environment"`
	BaseDir     *string `yaml:"base_dir"`
	CORSOrigins *string `yaml:"cors_origins"`
	LogDir      *string `yaml:"log_dir"`
	LogMaxFiles *int    `yaml:"log_max_files"`
}

// Load reads configuration from the environment, then overlays the
// optional YAML config file (CONFIG_FILE, default config.yaml) if one
// exists. Secrets are env-only and never read from the file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		BaseDir:     getEnv("BASE_DIR", "images"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		Password:    getEnv("PASSWORD", ""),
		AccessTTL:   time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTTL:  time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}

	if err := cfg.overlayFile(getEnv("CONFIG_FILE", "config.yaml")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.Environment != nil {
		c.Environment = *fc.Environment
	}
	if fc.BaseDir != nil {
		c.BaseDir = *fc.BaseDir
	}
	if fc.CORSOrigins != nil {
		c.CORSOrigins = *fc.CORSOrigins
	}
	if fc.LogDir != nil {
		c.LogDir = *fc.LogDir
	}
	if fc.LogMaxFiles != nil {
		c.LogMaxFiles = *fc.LogMaxFiles
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
