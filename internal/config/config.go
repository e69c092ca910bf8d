// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// Default values applied by Defaults.
const (
	DefaultPort            = 8080
	DefaultOutputDir       = "."
	DefaultCaptureScale    = 2.0
	DefaultCaptureTimeout  = "30s"
	DefaultSuggestionDelay = "1.5s"
	maxCaptureScale        = 4.0
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Document
	Template string `json:"template,omitempty"`  // Template applied to the built-in sample document
	DataFile string `json:"data_file,omitempty"` // Seed document JSON; the built-in sample is used when empty

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Export
	OutputDir       string  `json:"output_dir,omitempty"`        // Directory exported PDFs are written to
	CaptureScale    float64 `json:"capture_scale,omitempty"`     // Screenshot upscaling factor
	CaptureTimeout  string  `json:"capture_timeout,omitempty"`   // Go duration bounding one capture
	ChromePath      string  `json:"chrome_path,omitempty"`       // Chrome binary; PATH lookup when empty
	ChromeRemoteURL string  `json:"chrome_remote_url,omitempty"` // DevTools websocket of a running browser
	ChromeNoSandbox bool    `json:"chrome_no_sandbox,omitempty"` // Disable the Chrome sandbox (containers)

	// S3 delivery
	S3Bucket   string `json:"s3_bucket,omitempty"`   // Upload exports to this bucket instead of OutputDir
	S3Prefix   string `json:"s3_prefix,omitempty"`   // Key prefix inside the bucket
	S3Region   string `json:"s3_region,omitempty"`   // Bucket region
	S3Endpoint string `json:"s3_endpoint,omitempty"` // Custom endpoint for S3 compatible stores

	// Suggestions
	SuggestionDelay string `json:"suggestion_delay,omitempty"` // Simulated generation latency

	// Behavior
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON logs
	Debug   bool `json:"debug,omitempty"`    // Enable debug logging
	Verbose bool `json:"verbose,omitempty"`  // Print detailed progress to stdout
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Template:        string(types.DefaultTemplate),
		Port:            DefaultPort,
		OutputDir:       DefaultOutputDir,
		CaptureScale:    DefaultCaptureScale,
		CaptureTimeout:  DefaultCaptureTimeout,
		SuggestionDelay: DefaultSuggestionDelay,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Template != "" && !types.TemplateName(c.Template).IsKnown() {
		return fmt.Errorf("config error: unknown template %q (known: %v)", c.Template, types.KnownTemplates())
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CaptureScale < 0 || c.CaptureScale > maxCaptureScale {
		return fmt.Errorf("config error: 'capture_scale' must be between 0 and %g", maxCaptureScale)
	}

	if _, err := parseDuration(c.CaptureTimeout); err != nil {
		return fmt.Errorf("config error: 'capture_timeout': %w", err)
	}
	if _, err := parseDuration(c.SuggestionDelay); err != nil {
		return fmt.Errorf("config error: 'suggestion_delay': %w", err)
	}

	if c.S3Prefix != "" && c.S3Bucket == "" {
		return fmt.Errorf("config error: 's3_prefix' requires 's3_bucket'")
	}
	if c.ChromePath != "" && c.ChromeRemoteURL != "" {
		return fmt.Errorf("config error: 'chrome_path' and 'chrome_remote_url' are mutually exclusive")
	}

	if c.DataFile != "" {
		if _, err := os.Stat(c.DataFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.DataFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.DataFile == "" {
		result.DataFile = defaults.DataFile
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.CaptureTimeout == "" {
		result.CaptureTimeout = defaults.CaptureTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ChromeRemoteURL == "" {
		result.ChromeRemoteURL = defaults.ChromeRemoteURL
	}
	if result.S3Bucket == "" {
		result.S3Bucket = defaults.S3Bucket
	}
	if result.S3Prefix == "" {
		result.S3Prefix = defaults.S3Prefix
	}
	if result.S3Region == "" {
		result.S3Region = defaults.S3Region
	}
	if result.S3Endpoint == "" {
		result.S3Endpoint = defaults.S3Endpoint
	}
	if result.SuggestionDelay == "" {
		result.SuggestionDelay = defaults.SuggestionDelay
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CaptureScale == 0 {
		result.CaptureScale = defaults.CaptureScale
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// CaptureTimeoutDuration returns the parsed capture timeout, zero when unset.
func (c *Config) CaptureTimeoutDuration() time.Duration {
	d, _ := parseDuration(c.CaptureTimeout)
	return d
}

// SuggestionDelayDuration returns the parsed suggestion delay, zero when unset.
func (c *Config) SuggestionDelayDuration() time.Duration {
	d, _ := parseDuration(c.SuggestionDelay)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be non-negative, got %s", s)
	}
	return d, nil
}
