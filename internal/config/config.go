package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/detector"
	"github.com/MeKo-Tech/lingua/internal/mention"
)

// Config represents the complete configuration for the lingua application.
// It includes settings for all commands (detect, bulk, mentions, serve) and
// supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	CatalogDir string `mapstructure:"catalog_dir" yaml:"catalog_dir" json:"catalog_dir"`
	LogLevel   string `mapstructure:"log_level"   yaml:"log_level"   json:"log_level"`
	Verbose    bool   `mapstructure:"verbose"     yaml:"verbose"     json:"verbose"`

	// External detector configuration
	Detector DetectorConfig `mapstructure:"detector" yaml:"detector" json:"detector"`

	// Mention matching configuration
	Mention MentionConfig `mapstructure:"mention" yaml:"mention" json:"mention"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DetectorConfig contains external detector process settings.
type DetectorConfig struct {
	Binary        string `mapstructure:"binary"         yaml:"binary"         json:"binary"`
	ScratchDir    string `mapstructure:"scratch_dir"    yaml:"scratch_dir"    json:"scratch_dir"`
	QuarantineDir string `mapstructure:"quarantine_dir" yaml:"quarantine_dir" json:"quarantine_dir"`
	MaxWorkers    int    `mapstructure:"max_workers"    yaml:"max_workers"    json:"max_workers"`
}

// MentionConfig contains mention matching settings.
type MentionConfig struct {
	SimilarityThreshold float64  `mapstructure:"similarity_threshold" yaml:"similarity_threshold" json:"similarity_threshold"`
	SupportedCodes      []string `mapstructure:"supported_codes"      yaml:"supported_codes"      json:"supported_codes"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file"   yaml:"file"   json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"             json:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"             json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin"      yaml:"cors_origin"      json:"cors_origin"`
	TimeoutSec      int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"      json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxTextsPerCall int    `mapstructure:"max_texts_per_call" yaml:"max_texts_per_call" json:"max_texts_per_call"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	det := detector.DefaultConfig()
	return &Config{
		CatalogDir: catalog.DefaultDataDir,
		LogLevel:   "info",
		Verbose:    false,
		Detector: DetectorConfig{
			Binary:        det.Binary,
			ScratchDir:    det.ScratchDir,
			QuarantineDir: det.QuarantineDir,
			MaxWorkers:    det.MaxWorkers,
		},
		Mention: MentionConfig{
			SimilarityThreshold: mention.DefaultSimilarityThreshold,
			SupportedCodes:      mention.DefaultSupportedCodes(),
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			TimeoutSec:      120,
			ShutdownTimeout: 10,
			MaxTextsPerCall: 100,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []string

	if c.CatalogDir == "" {
		errs = append(errs, "catalog_dir must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel))
	}
	if c.Detector.Binary == "" {
		errs = append(errs, "detector.binary must not be empty")
	}
	if c.Detector.MaxWorkers < 0 {
		errs = append(errs, "detector.max_workers must not be negative")
	}
	if c.Mention.SimilarityThreshold < 0 || c.Mention.SimilarityThreshold > 100 {
		errs = append(errs, "mention.similarity_threshold must be between 0 and 100")
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Sprintf("invalid output.format %q (must be text, json or yaml)", c.Output.Format))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server.port %d", c.Server.Port))
	}
	if c.Server.TimeoutSec <= 0 {
		errs = append(errs, "server.timeout_sec must be positive")
	}
	if c.Server.MaxTextsPerCall <= 0 {
		errs = append(errs, "server.max_texts_per_call must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DetectorSettings converts the detector section into the gateway's config.
func (c *Config) DetectorSettings() detector.Config {
	return detector.Config{
		Binary:        c.Detector.Binary,
		ScratchDir:    c.Detector.ScratchDir,
		QuarantineDir: c.Detector.QuarantineDir,
		MaxWorkers:    c.Detector.MaxWorkers,
	}
}

// MentionSettings converts the mention section into the matcher's config.
func (c *Config) MentionSettings() mention.Config {
	return mention.Config{
		SimilarityThreshold: c.Mention.SimilarityThreshold,
		SupportedCodes:      c.Mention.SupportedCodes,
	}
}
