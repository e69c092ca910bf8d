package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/suggestions"
	"github.com/jonathan/resume-builder/internal/types"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that holds the resume document in memory and exposes
editing, live preview, PDF download, download notices and writing suggestions.

Endpoints:
  GET    /document                  Current document
  PUT    /document                  Replace the document
  PATCH  /document/personal-info    Update personal info
  PUT    /document/template         Select a template
  POST   /document/{section}        Add an entry (education, experience, projects, skill-categories)
  GET    /templates                 Template catalog
  GET    /preview                   Rendered HTML preview
  GET    /preview/tree              Visual tree as JSON
  POST   /download                  Export the preview as resume.pdf
  GET    /notices                   Download notices (server-sent events)
  POST   /suggestions               Writing suggestions for a prompt
  GET    /health                    Health check
  GET    /metrics                   Prometheus metrics

Example:
  resume_builder serve --port 8080 --data resume.json`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if servePort != 0 {
		cfg.Port = servePort
	}

	seed, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, seed, newCapturer(cfg, log), cfg, log)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}

// newServer wires the store, export pipeline and notice broker into a server.
func newServer(ctx context.Context, seed *types.ResumeDocument, capturer export.Capturer, cfg *config.Config, log *zap.Logger) (*server.Server, error) {
	sink, err := newSink(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := document.NewStore(seed, document.WithLogger(log))
	broker := export.NewBroker()
	metrics := observability.NewMetrics()
	pipeline := export.NewPipeline(store, capturer, sink,
		export.WithNotifier(export.MultiNotifier{broker, export.LogNotifier{Logger: log}}),
		export.WithMetrics(metrics),
		export.WithLogger(log),
	)

	return server.New(server.Config{
		Port:        cfg.Port,
		Store:       store,
		Pipeline:    pipeline,
		Broker:      broker,
		Suggestions: suggestions.NewGenerator(cfg.SuggestionDelayDuration(), log),
		Metrics:     metrics,
		Logger:      log,
	})
}
