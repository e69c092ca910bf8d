package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	exportTemplate    string
	exportAll         bool
	exportConcurrency int
	exportOutDir      string
	exportS3Bucket    string
	exportS3Prefix    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the document as a single page PDF",
	Long: `Render the document, capture it with headless Chrome and write resume.pdf.

With --all every template is exported into its own subdirectory (or key prefix
when uploading to S3), for example out/modern/resume.pdf.

Examples:
  resume_builder export --data resume.json --out-dir out
  resume_builder export --all --s3-bucket resumes --s3-prefix 2026`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template to export with (default: the document's template)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every template")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 2, "Browser captures to run at once with --all")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "Directory to write PDFs to")
	exportCmd.Flags().StringVar(&exportS3Bucket, "s3-bucket", "", "Upload to this S3 bucket instead of writing files")
	exportCmd.Flags().StringVar(&exportS3Prefix, "s3-prefix", "", "Key prefix inside the S3 bucket")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if exportOutDir != "" {
		cfg.OutputDir = exportOutDir
	}
	if exportS3Bucket != "" {
		cfg.S3Bucket = exportS3Bucket
	}
	if exportS3Prefix != "" {
		cfg.S3Prefix = exportS3Prefix
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintDocument(doc)
	}

	ctx := cmd.Context()
	capturer := newCapturer(cfg, log)

	if !exportAll {
		sink, err := newSink(ctx, cfg)
		if err != nil {
			return err
		}
		store := document.NewStore(doc, document.WithLogger(log))
		if exportTemplate != "" {
			store.SetTemplate(exportTemplate)
		}
		pipeline := export.NewPipeline(store, capturer, sink, export.WithLogger(log))
		art, err := pipeline.Download(ctx)
		if err != nil {
			return err
		}
		reportArtifact(printer, cfg, art)
		return nil
	}

	sinkFor, err := templateSinks(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline := export.NewPipeline(nil, capturer, nil, export.WithLogger(log))
	artifacts, failures := exportTemplates(ctx, pipeline, doc, types.KnownTemplates(), sinkFor, exportConcurrency, log)

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		reportArtifact(printer, cfg, artifacts[types.TemplateName(name)])
	}
	printer.PrintExportFailures(failures)

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d exports failed", len(failures), len(failures)+len(artifacts))
	}
	return nil
}

func reportArtifact(printer *observability.Printer, cfg *config.Config, art *export.Artifact) {
	if cfg.Verbose {
		printer.PrintExportResult(art)
		return
	}
	fmt.Printf("Exported %s (%s) to %s\n", art.Filename, art.Template, art.Location)
}

// templateSinks returns a sink per template, each under its own directory or key prefix.
func templateSinks(ctx context.Context, cfg *config.Config) (func(types.TemplateName) export.Sink, error) {
	if cfg.S3Bucket == "" {
		return func(name types.TemplateName) export.Sink {
			return export.FileSink{Dir: filepath.Join(cfg.OutputDir, string(name))}
		}, nil
	}
	client, err := export.NewS3Client(ctx, export.S3Options{Region: cfg.S3Region, Endpoint: cfg.S3Endpoint})
	if err != nil {
		return nil, err
	}
	return func(name types.TemplateName) export.Sink {
		return export.S3Sink{Client: client, Bucket: cfg.S3Bucket, Prefix: path.Join(cfg.S3Prefix, string(name))}
	}, nil
}

// exportTemplates exports doc once per template with at most limit captures in flight.
// A failed template does not stop the others.
func exportTemplates(
	ctx context.Context,
	pipeline *export.Pipeline,
	doc *types.ResumeDocument,
	names []types.TemplateName,
	sinkFor func(types.TemplateName) export.Sink,
	limit int,
	log *zap.Logger,
) (map[types.TemplateName]*export.Artifact, map[types.TemplateName]error) {
	artifacts := make(map[types.TemplateName]*export.Artifact)
	failures := make(map[types.TemplateName]error)
	var mu sync.Mutex

	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, name := range names {
		g.Go(func() error {
			variant := doc.Clone()
			variant.Template = name
			art, err := pipeline.ExportTo(gctx, variant, sinkFor(name))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("export failed", zap.String("template", string(name)), zap.Error(err))
				failures[name] = err
				return nil
			}
			artifacts[name] = art
			return nil
		})
	}
	_ = g.Wait()
	return artifacts, failures
}
