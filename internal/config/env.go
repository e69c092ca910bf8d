package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "RESUME_BUILDER_"

// ApplyEnv fills empty fields from RESUME_BUILDER_* environment variables.
// Values already set (from the config file) win over the environment.
func (c *Config) ApplyEnv() error {
	setString(&c.Template, "TEMPLATE")
	setString(&c.DataFile, "DATA_FILE")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.CaptureTimeout, "CAPTURE_TIMEOUT")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.ChromeRemoteURL, "CHROME_REMOTE_URL")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3Prefix, "S3_PREFIX")
	setString(&c.S3Region, "S3_REGION")
	setString(&c.S3Endpoint, "S3_ENDPOINT")
	setString(&c.SuggestionDelay, "SUGGESTION_DELAY")

	if v := os.Getenv(EnvPrefix + "PORT"); v != "" && c.Port == 0 {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT must be a valid integer: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvPrefix + "CAPTURE_SCALE"); v != "" && c.CaptureScale == 0 {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sCAPTURE_SCALE must be a number: %w", EnvPrefix, err)
		}
		c.CaptureScale = scale
	}
	if v := os.Getenv(EnvPrefix + "CHROME_NO_SANDBOX"); v != "" && !c.ChromeNoSandbox {
		noSandbox, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCHROME_NO_SANDBOX must be a boolean: %w", EnvPrefix, err)
		}
		c.ChromeNoSandbox = noSandbox
	}
	return nil
}

func setString(dst *string, key string) {
	if *dst != "" {
		return
	}
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = v
	}
}
