package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// loadSettings resolves configuration in order of precedence:
// command line flags, config file, environment variables, defaults.
func loadSettings() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dataPath != "" {
		cfg.DataFile = dataPath
	}
	cfg.Debug = cfg.Debug || debugLogs
	cfg.LogJSON = cfg.LogJSON || jsonLogs
	cfg.Verbose = cfg.Verbose || verbose

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// setup loads settings and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// loadDocument reads the configured data file, or returns the built-in sample.
func loadDocument(cfg *config.Config) (*types.ResumeDocument, error) {
	if cfg.DataFile == "" {
		doc := types.SampleDocument()
		if cfg.Template != "" {
			doc.Template = types.TemplateName(cfg.Template)
		}
		return doc, nil
	}
	return schemas.LoadDocument(cfg.DataFile)
}

func newCapturer(cfg *config.Config, log *zap.Logger) *export.ChromeCapturer {
	return export.NewChromeCapturer(export.ChromeOptions{
		Scale:     cfg.CaptureScale,
		Timeout:   cfg.CaptureTimeoutDuration(),
		NoSandbox: cfg.ChromeNoSandbox,
		ExecPath:  cfg.ChromePath,
		RemoteURL: cfg.ChromeRemoteURL,
	}, log)
}

// newSink delivers to S3 when a bucket is configured and to the output directory otherwise.
func newSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.S3Bucket == "" {
		return export.FileSink{Dir: cfg.OutputDir}, nil
	}
	client, err := export.NewS3Client(ctx, export.S3Options{
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return export.S3Sink{Client: client, Bucket: cfg.S3Bucket, Prefix: cfg.S3Prefix}, nil
}
