package export

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Outcome labels reported to Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Snapshotter provides the document to export.
type Snapshotter interface {
	Snapshot() *types.ResumeDocument
}

// Metrics records export results.
type Metrics interface {
	ObserveExport(template string, outcome string, elapsed time.Duration)
}

// Artifact describes a delivered export.
type Artifact struct {
	Filename string             `json:"filename"`
	Location string             `json:"location"`
	Size     int                `json:"size"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	Template types.TemplateName `json:"template"`
	Duration time.Duration      `json:"duration"`
}

// Pipeline runs render, capture, assemble, verify and deliver in order.
// Nothing reaches the sink unless every earlier phase succeeded.
type Pipeline struct {
	store     Snapshotter
	capturer  Capturer
	assembler Assembler
	sink      Sink
	notifier  Notifier
	metrics   Metrics
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAssembler overrides the PDF assembler.
func WithAssembler(a Assembler) Option {
	return func(p *Pipeline) { p.assembler = a }
}

// WithNotifier sets where download notices go.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithMetrics sets the export metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a pipeline reading documents from store and delivering to sink.
func NewPipeline(store Snapshotter, capturer Capturer, sink Sink, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     store,
		capturer:  capturer,
		assembler: PDFAssembler{},
		sink:      sink,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.notifier == nil {
		p.notifier = LogNotifier{Logger: p.logger}
	}
	return p
}

// Export runs the pipeline for doc into the default sink.
func (p *Pipeline) Export(ctx context.Context, doc *types.ResumeDocument) (*Artifact, error) {
	return p.ExportTo(ctx, doc, p.sink)
}

// ExportTo runs the pipeline for doc into sink. Failures are returned as *ExportError.
func (p *Pipeline) ExportTo(ctx context.Context, doc *types.ResumeDocument, sink Sink) (*Artifact, error) {
	start := time.Now()
	name := types.DefaultTemplate
	if doc != nil {
		name = types.ResolveTemplate(doc.Template)
	}

	art, err := p.run(ctx, doc, sink)
	elapsed := time.Since(start)
	if p.metrics != nil {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		}
		p.metrics.ObserveExport(string(name), outcome, elapsed)
	}
	if err != nil {
		return nil, err
	}
	art.Template = name
	art.Duration = elapsed
	return art, nil
}

func (p *Pipeline) run(ctx context.Context, doc *types.ResumeDocument, sink Sink) (*Artifact, error) {
	html, err := rendering.RenderHTML(doc)
	if err != nil {
		return nil, phaseError(PhaseRender, err)
	}

	img, err := p.capturer.Capture(ctx, html)
	if err != nil {
		return nil, phaseError(PhaseCapture, err)
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, phaseError(PhaseCapture, ErrEmptyCapture)
	}

	data, err := p.assembler.Assemble(img)
	if err != nil {
		return nil, phaseError(PhaseAssemble, err)
	}
	if err := Verify(data); err != nil {
		return nil, phaseError(PhaseVerify, err)
	}

	location, err := sink.Deliver(ctx, Filename, data)
	if err != nil {
		return nil, phaseError(PhaseDeliver, err)
	}
	p.logger.Info("exported resume",
		zap.String("location", location),
		zap.Int("bytes", len(data)),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return &Artifact{
		Filename: Filename,
		Location: location,
		Size:     len(data),
		Width:    img.Width,
		Height:   img.Height,
	}, nil
}

// Download is the user-facing export action. The document is snapshotted at
// invocation, progress and outcome are reported as notices, and failures are
// logged and reported with one generic message. Concurrent calls run independently.
func (p *Pipeline) Download(ctx context.Context) (*Artifact, error) {
	return p.DownloadTo(ctx, p.sink)
}

// DownloadTo is Download with an explicit sink, e.g. an HTTP response.
func (p *Pipeline) DownloadTo(ctx context.Context, sink Sink) (*Artifact, error) {
	doc := p.store.Snapshot()
	p.notify(LevelInfo, MessagePreparing)

	art, err := p.ExportTo(ctx, doc, sink)
	if err != nil {
		p.logger.Error("resume download failed", zap.Error(err))
		p.notify(LevelError, MessageFailure)
		return nil, err
	}
	p.notify(LevelSuccess, MessageSuccess)
	return art, nil
}

func (p *Pipeline) notify(level Level, msg string) {
	p.notifier.Notify(Notice{Level: level, Message: msg, Time: time.Now()})
}
