package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG decoding for DecodeImage
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// Default capture settings.
const (
	DefaultScale          = 2.0
	DefaultCaptureTimeout = 30 * time.Second

	// Letter width at 96 CSS px per inch.
	viewportWidth  = 816
	viewportHeight = 1056
)

// Image is a captured PNG together with its pixel dimensions.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Capturer rasterizes the anchored element of an HTML page.
type Capturer interface {
	Capture(ctx context.Context, html []byte) (*Image, error)
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func(ctx context.Context, html []byte) (*Image, error)

// Capture calls f(ctx, html).
func (f CapturerFunc) Capture(ctx context.Context, html []byte) (*Image, error) {
	return f(ctx, html)
}

// CheckAnchor reports ErrDetachedNode when html has no capture anchor.
func CheckAnchor(html []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}
	if doc.Find("#"+rendering.AnchorID).Length() == 0 {
		return ErrDetachedNode
	}
	return nil
}

// DecodeImage reads the dimensions of a PNG capture. Zero-sized images yield ErrEmptyCapture.
func DecodeImage(png []byte) (*Image, error) {
	if len(png) == 0 {
		return nil, ErrEmptyCapture
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("unexpected capture format %q", format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, ErrEmptyCapture
	}
	return &Image{PNG: png, Width: cfg.Width, Height: cfg.Height}, nil
}

// ChromeOptions configures the headless browser used for capture.
type ChromeOptions struct {
	// Scale is the upscaling factor applied to the screenshot.
	Scale float64
	// Timeout bounds one capture, browser start included.
	Timeout time.Duration
	// NoSandbox disables the Chrome sandbox (needed in most containers).
	NoSandbox bool
	// ExecPath overrides the Chrome binary.
	ExecPath string
	// RemoteURL connects to an already running browser over its DevTools websocket instead of starting one.
	RemoteURL string
}

// ChromeCapturer captures pages with headless Chrome.
type ChromeCapturer struct {
	opts   ChromeOptions
	logger *zap.Logger
}

// NewChromeCapturer creates a capturer; zero options take the defaults.
func NewChromeCapturer(opts ChromeOptions, logger *zap.Logger) *ChromeCapturer {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCaptureTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeCapturer{opts: opts, logger: logger}
}

// Capture loads html into a fresh tab on a white background and screenshots
// the anchor element at the configured scale.
func (c *ChromeCapturer) Capture(ctx context.Context, html []byte) (*Image, error) {
	if err := CheckAnchor(html); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	allocCtx, allocCancel := c.allocator(ctx)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	start := time.Now()
	var attached bool
	err := chromedp.Run(taskCtx,
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf("document.getElementById(%q) !== null", rendering.AnchorID), &attached),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	if !attached {
		return nil, ErrDetachedNode
	}

	var buf []byte
	err = chromedp.Run(taskCtx,
		chromedp.ScreenshotScale("#"+rendering.AnchorID, c.opts.Scale, &buf, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture page: %w", err)
	}

	img, err := DecodeImage(buf)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("captured page",
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("bytes", len(img.PNG)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return img, nil
}

func (c *ChromeCapturer) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, c.opts.RemoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.opts.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}
