package rendering

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNilTree is returned when there is no visual tree to serialize.
var ErrNilTree = errors.New("nil visual tree")

// TemplateError reports a broken page template or stylesheet. Template is
// empty when the shared page template itself failed.
type TemplateError struct {
	Template types.TemplateName
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	prefix := "template error"
	if e.Template != "" {
		prefix = fmt.Sprintf("template error (%s)", e.Template)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a failure writing a rendered page.
type RenderError struct {
	Template types.TemplateName
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("render error (%s): %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("render error: %v", e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
