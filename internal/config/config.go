package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for the compiler wrapper CLI. The analyzer takes
// everything on the command line and deliberately carries no ambient
// configuration.
type Config struct {
	CompilerPath   string   `yaml:"compiler_path"`
	Wine           bool     `yaml:"wine"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	ExtraArgs      []string `yaml:"extra_args"`

	LogFile       string `yaml:"log_file"`
	MaxLogSizeMB  int64  `yaml:"max_log_size_mb"`
	MaxLogBackups int    `yaml:"max_log_backups"`
}

// Load builds the configuration from the environment. A .env file in the
// working directory is read first if present; real environment variables win
// over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		CompilerPath:   envStr("MQL_COMPILER", ""),
		Wine:           envBool("MQL_COMPILER_WINE", false),
		TimeoutSeconds: envInt("MQL_COMPILER_TIMEOUT", 120),
		LogFile:        envStr("MQL_COMPILER_LOG", "mql_compiler.log"),
		MaxLogSizeMB:   int64(envInt("MQL_COMPILER_LOG_SIZE_MB", 5)),
		MaxLogBackups:  envInt("MQL_COMPILER_LOG_BACKUPS", 3),
	}
}

// MergeFile overlays settings from a yaml file onto c. Only fields present in
// the file are touched, so env-derived values survive an incomplete file.
func (c *Config) MergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Timeout returns the configured compiler timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
