package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"template": "modern",
		"port": 9090,
		"output_dir": "out",
		"capture_scale": 3,
		"capture_timeout": "45s",
		"s3_bucket": "resumes",
		"s3_prefix": "exports",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "modern", cfg.Template)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 3.0, cfg.CaptureScale)
	assert.Equal(t, 45*time.Second, cfg.CaptureTimeoutDuration())
	assert.Equal(t, "resumes", cfg.S3Bucket)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "unknown template", cfg: Config{Template: "fancy"}, want: "unknown template"},
		{name: "negative port", cfg: Config{Port: -1}, want: "port"},
		{name: "port too large", cfg: Config{Port: 70000}, want: "port"},
		{name: "scale too large", cfg: Config{CaptureScale: 8}, want: "capture_scale"},
		{name: "bad timeout", cfg: Config{CaptureTimeout: "soon"}, want: "capture_timeout"},
		{name: "negative delay", cfg: Config{SuggestionDelay: "-1s"}, want: "suggestion_delay"},
		{name: "prefix without bucket", cfg: Config{S3Prefix: "x"}, want: "s3_bucket"},
		{name: "chrome path and remote", cfg: Config{ChromePath: "/bin/chrome", ChromeRemoteURL: "ws://x"}, want: "mutually exclusive"},
		{name: "missing data file", cfg: Config{DataFile: "/nonexistent/resume.json"}, want: "data file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	defaults := Defaults()
	assert.NoError(t, defaults.Validate())

	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Template: "creative",
		Port:     9000,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "creative", merged.Template)
	assert.Equal(t, 9000, merged.Port)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultOutputDir, merged.OutputDir)
	assert.Equal(t, DefaultCaptureScale, merged.CaptureScale)
	assert.Equal(t, 30*time.Second, merged.CaptureTimeoutDuration())
	assert.Equal(t, 1500*time.Millisecond, merged.SuggestionDelayDuration())
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Template: "minimal"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "minimal", merged.Template)
	assert.Zero(t, merged.Port)
	assert.Zero(t, merged.CaptureTimeoutDuration())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RESUME_BUILDER_TEMPLATE", "classic")
	t.Setenv("RESUME_BUILDER_PORT", "7070")
	t.Setenv("RESUME_BUILDER_CAPTURE_SCALE", "1.5")
	t.Setenv("RESUME_BUILDER_CHROME_NO_SANDBOX", "true")
	t.Setenv("RESUME_BUILDER_S3_BUCKET", "env-bucket")

	cfg := Config{S3Bucket: "file-bucket"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "classic", cfg.Template)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 1.5, cfg.CaptureScale)
	assert.True(t, cfg.ChromeNoSandbox)
	assert.Equal(t, "file-bucket", cfg.S3Bucket)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Setenv("RESUME_BUILDER_PORT", "eighty")
	cfg := Config{}
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESUME_BUILDER_PORT")

	t.Setenv("RESUME_BUILDER_PORT", "")
	t.Setenv("RESUME_BUILDER_CHROME_NO_SANDBOX", "maybe")
	cfg = Config{}
	assert.Error(t, cfg.ApplyEnv())
}
