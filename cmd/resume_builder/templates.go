package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if templatesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(types.TemplateCatalog()); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return nil
	}
	observability.NewPrinter(out).PrintTemplates(doc.Template)
	return nil
}
