package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestExportTemplates_WritesOnePDFPerTemplate(t *testing.T) {
	dir := t.TempDir()
	pipeline := export.NewPipeline(nil, blankCapturer(t), nil)
	sinkFor := func(name types.TemplateName) export.Sink {
		return export.FileSink{Dir: filepath.Join(dir, string(name))}
	}

	names := types.KnownTemplates()
	artifacts, failures := exportTemplates(context.Background(), pipeline, types.SampleDocument(), names, sinkFor, 2, zap.NewNop())
	require.Empty(t, failures)
	require.Len(t, artifacts, len(names))

	for _, name := range names {
		art := artifacts[name]
		require.NotNil(t, art, name)
		assert.Equal(t, name, art.Template)
		assert.Equal(t, filepath.Join(dir, string(name), export.Filename), art.Location)

		data, err := os.ReadFile(art.Location)
		require.NoError(t, err)
		assert.NoError(t, export.Verify(data))
	}
}

func TestExportTemplates_LeavesSourceDocumentAlone(t *testing.T) {
	doc := types.SampleDocument()
	doc.Template = types.TemplateClassic
	pipeline := export.NewPipeline(nil, blankCapturer(t), nil)

	_, failures := exportTemplates(context.Background(), pipeline, doc,
		[]types.TemplateName{types.TemplateModern, types.TemplateMinimal},
		func(types.TemplateName) export.Sink { return export.WriterSink{W: &syncDiscard{}} },
		0, zap.NewNop())
	require.Empty(t, failures)
	assert.Equal(t, types.TemplateClassic, doc.Template)
}

func TestExportTemplates_CollectsFailures(t *testing.T) {
	ok := blankCapturer(t)
	capturer := export.CapturerFunc(func(ctx context.Context, html []byte) (*export.Image, error) {
		if bytesContain(html, "template-creative") {
			return nil, errors.New("chrome crashed")
		}
		return ok.Capture(ctx, html)
	})
	pipeline := export.NewPipeline(nil, capturer, nil)
	dir := t.TempDir()

	artifacts, failures := exportTemplates(context.Background(), pipeline, types.SampleDocument(),
		[]types.TemplateName{types.TemplateCreative, types.TemplateModern},
		func(name types.TemplateName) export.Sink { return export.FileSink{Dir: filepath.Join(dir, string(name))} },
		1, zap.NewNop())

	require.Len(t, failures, 1)
	assert.Contains(t, failures[types.TemplateCreative].Error(), "chrome crashed")
	require.Len(t, artifacts, 1)
	assert.NotNil(t, artifacts[types.TemplateModern])
	assert.NoDirExists(t, filepath.Join(dir, "creative"))
}

func TestTemplateSinks_Files(t *testing.T) {
	cfg, err := loadSettingsFor(t, "")
	require.NoError(t, err)
	cfg.OutputDir = "out"

	sinkFor, err := templateSinks(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, export.FileSink{Dir: filepath.Join("out", "modern")}, sinkFor(types.TemplateModern))
}

func TestTemplateSinks_S3(t *testing.T) {
	cfg, err := loadSettingsFor(t, "")
	require.NoError(t, err)
	cfg.S3Bucket = "resumes"
	cfg.S3Prefix = "2026"
	cfg.S3Region = "us-east-1"

	sinkFor, err := templateSinks(context.Background(), cfg)
	require.NoError(t, err)
	sink, ok := sinkFor(types.TemplateClassic).(export.S3Sink)
	require.True(t, ok)
	assert.Equal(t, "resumes", sink.Bucket)
	assert.Equal(t, "2026/classic", sink.Prefix)
}
