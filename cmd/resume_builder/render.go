package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	renderTemplate string
	renderFormat   string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the document as an HTML page or a visual tree",
	Long: `Render the resume document through a template without exporting it.

The html format produces the same page the PDF export captures. The tree format
prints the template's visual tree as JSON.

Example:
  resume_builder render --data resume.json --template modern --out preview.html`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template to render with (default: the document's template)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "html", "Output format: html or tree")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintDocument(doc)
	}

	out := io.Writer(os.Stdout)
	if renderOutput != "" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := renderDocument(out, doc, types.TemplateName(renderTemplate), renderFormat); err != nil {
		return err
	}
	if renderOutput != "" {
		log.Info("rendered document", zap.String("format", renderFormat), zap.String("path", renderOutput))
	}
	return nil
}

// renderDocument writes doc in the given format. An empty name keeps the document's template.
func renderDocument(w io.Writer, doc *types.ResumeDocument, name types.TemplateName, format string) error {
	if name == "" {
		name = doc.Template
	}
	tree := rendering.RenderAs(doc, name)

	switch format {
	case "html":
		title := "Resume"
		if doc.PersonalInfo.Name != "" {
			title = doc.PersonalInfo.Name + " - Resume"
		}
		return rendering.WriteHTML(w, tree, rendering.HTMLOptions{Title: title})
	case "tree":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("failed to encode visual tree: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected html or tree)", format)
	}
}
