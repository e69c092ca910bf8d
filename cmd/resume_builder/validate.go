package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
)

var (
	validateJSON   string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume document JSON file",
	Long: `Validate a resume document against the embedded document schema, including
the unique id rules. Pass --schema to check the file against another JSON Schema instead.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to JSON Schema file (default: embedded document schema)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	return validateFile(cmd.OutOrStdout(), validateJSON, validateSchema)
}

func validateFile(out io.Writer, jsonPath, schemaPath string) error {
	var err error
	if schemaPath != "" {
		err = schemas.ValidateJSON(schemaPath, jsonPath)
	} else {
		var data []byte
		data, err = os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", jsonPath, err)
		}
		err = schemas.ValidateDocument(data)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed: %d error(s)\n", len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
		}
		return errors.New("validation failed")
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", jsonPath)
	return nil
}
