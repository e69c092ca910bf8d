// Package observability provides formatted output for verbose CLI mode and the
// prometheus metrics shared by the CLI and server.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of a resume document.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	info := doc.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:      %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("Title:     %s\n", info.Title))
	sb.WriteString(fmt.Sprintf("Template:  %s", doc.Template))
	if resolved := types.ResolveTemplate(doc.Template); resolved != doc.Template {
		sb.WriteString(fmt.Sprintf(" (renders as %s)", resolved))
	}
	sb.WriteString("\n\n")

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s (%d bullets)\n", exp.Position, exp.Company, len(exp.Description)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education:  %d\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Projects:   %d\n", len(doc.Projects)))
	sb.WriteString(fmt.Sprintf("Skills:     %d in %d categories", doc.SkillCount(), len(doc.SkillCategories)))

	p.printBox("RESUME DOCUMENT", sb.String())
}

// PrintTemplates outputs the template catalog, marking the active one.
func (p *Printer) PrintTemplates(active types.TemplateName) {
	resolved := types.ResolveTemplate(active)
	var sb strings.Builder
	for i, info := range types.TemplateCatalog() {
		marker := " "
		if info.ID == resolved {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-13s %s", marker, info.ID, info.Description))
		if i < len(types.TemplateCatalog())-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TEMPLATES", sb.String())
}

// PrintExportResult outputs where an export was delivered.
func (p *Printer) PrintExportResult(art *export.Artifact) {
	if art == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template:  %s\n", art.Template))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", art.Location))
	sb.WriteString(fmt.Sprintf("Size:      %s\n", formatBytes(art.Size)))
	sb.WriteString(fmt.Sprintf("Capture:   %dx%d px\n", art.Width, art.Height))
	sb.WriteString(fmt.Sprintf("Elapsed:   %s", art.Duration.Round(1e6)))

	p.printBox("PDF EXPORTED", sb.String())
}

// PrintExportFailures outputs per-template export failures.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExportFailures(failures map[types.TemplateName]error) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL EXPORTS SUCCEEDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Failed %d exports:\n\n", len(failures)))
	i := 0
	for _, name := range types.KnownTemplates() {
		err, ok := failures[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", name))
		sb.WriteString(fmt.Sprintf("  %s", err))
		i++
		if i < len(failures) {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("EXPORT FAILURES", sb.String())
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
