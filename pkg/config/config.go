package config

import (
	"github.com/sdejongh/vidupe/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Tags    TagsConfig    `yaml:"tags"`
}

// ScanConfig holds scan-related settings
type ScanConfig struct {
	VideoExtensions []string         `yaml:"video_extensions"`
	Exclude         []string         `yaml:"exclude"`
	Mode            models.MatchMode `yaml:"mode"`      // "exact" or "fuzzy"
	Threshold       float64          `yaml:"threshold"` // Fuzzy similarity, percent
	MaxWorkers      int              `yaml:"max_workers"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress while scanning
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format     string `yaml:"format"`      // "json" or "text"
	Level      string `yaml:"level"`       // "debug", "info", "warn", "error"
	File       string `yaml:"file"`        // Log file path (empty = no log)
	MaxSize    int    `yaml:"max_size"`    // Rotate after this many megabytes
	MaxBackups int    `yaml:"max_backups"` // Rotated files kept
}

// TagsConfig holds tag store settings
type TagsConfig struct {
	File string `yaml:"file"` // Tag store path (empty = default location)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			VideoExtensions: []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".m4v"},
			Exclude:         []string{},
			Mode:            models.MatchExact,
			Threshold:       80,
			MaxWorkers:      4,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "info",
			File:       "",
			MaxSize:    10,
			MaxBackups: 3,
		},
		Tags: TagsConfig{
			File: "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Scan.VideoExtensions) == 0 {
		return &models.ValidationError{
			Field:   "scan.video_extensions",
			Message: "must list at least one extension",
		}
	}

	if c.Scan.Mode != models.MatchExact && c.Scan.Mode != models.MatchFuzzy {
		return &models.ValidationError{
			Field:   "scan.mode",
			Message: "must be 'exact' or 'fuzzy'",
		}
	}

	if c.Scan.Threshold <= 0 || c.Scan.Threshold > 100 {
		return &models.ValidationError{
			Field:   "scan.threshold",
			Message: "must be a percentage between 1 and 100",
		}
	}

	if c.Scan.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "scan.max_workers",
			Message: "must be at least 1",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "rotation limits must not be negative",
		}
	}

	return nil
}
