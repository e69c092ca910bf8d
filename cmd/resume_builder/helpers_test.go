package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
)

// resetFlags clears the package level flag values for the duration of a test.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := []any{configPath, dataPath, debugLogs, jsonLogs, verbose}
	configPath, dataPath = "", ""
	debugLogs, jsonLogs, verbose = false, false, false
	t.Cleanup(func() {
		configPath = saved[0].(string)
		dataPath = saved[1].(string)
		debugLogs = saved[2].(bool)
		jsonLogs = saved[3].(bool)
		verbose = saved[4].(bool)
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// blankCapturer checks the page anchor and returns a white image instead of starting a browser.
func blankCapturer(t *testing.T) export.Capturer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 60))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	data := buf.Bytes()

	return export.CapturerFunc(func(_ context.Context, html []byte) (*export.Image, error) {
		if err := export.CheckAnchor(html); err != nil {
			return nil, err
		}
		return export.DecodeImage(data)
	})
}

const sampleDocumentJSON = `{
  "personal_info": {"name": "Sam Lee", "title": "Engineer", "email": "sam@example.com"},
  "education": [],
  "experience": [
    {"id": "exp-1", "company": "Acme", "position": "Developer", "start_date": "2020-01", "end_date": "Present", "description": ["Built things"]}
  ],
  "projects": [],
  "skill_categories": [],
  "template": "modern"
}`

// loadSettingsFor resolves settings with only the given config file set.
func loadSettingsFor(t *testing.T, path string) (*config.Config, error) {
	t.Helper()
	resetFlags(t)
	configPath = path
	return loadSettings()
}

func bytesContain(b []byte, s string) bool {
	return bytes.Contains(b, []byte(s))
}

type syncDiscard struct{ mu sync.Mutex }

func (d *syncDiscard) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(p), nil
}
