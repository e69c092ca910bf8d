// Package export turns a resume document into a downloadable single-page PDF:
// the rendered page is captured as an image, embedded into a PDF sized to the
// image, verified and only then delivered.
package export

import (
	"errors"
	"fmt"
)

// Phase names the pipeline step an export failed in.
type Phase string

// Pipeline phases, in execution order.
const (
	PhaseRender   Phase = "render"
	PhaseCapture  Phase = "capture"
	PhaseAssemble Phase = "assemble"
	PhaseVerify   Phase = "verify"
	PhaseDeliver  Phase = "deliver"
)

var (
	// ErrDetachedNode is returned when the capture anchor is missing from the page.
	ErrDetachedNode = errors.New("capture anchor is not attached to the page")
	// ErrEmptyCapture is returned when the captured image has no pixels.
	ErrEmptyCapture = errors.New("capture produced an empty image")
	// ErrCorruptDocument is returned when the assembled bytes are not a single-page PDF.
	ErrCorruptDocument = errors.New("assembled document is not a valid single-page pdf")
)

// ExportError wraps a failure with the phase it happened in.
type ExportError struct {
	Phase Phase
	Cause error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed during %s: %v", e.Phase, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

func phaseError(phase Phase, err error) error {
	return &ExportError{Phase: phase, Cause: err}
}
