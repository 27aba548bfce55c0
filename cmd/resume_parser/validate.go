package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-structurer/internal/observability"
	"github.com/jonathan/resume-structurer/internal/schemas"
	"github.com/jonathan/resume-structurer/internal/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate ResumeDocument JSON against the schema",
	Long:  "Validates a ResumeDocument JSON file against the embedded JSON Schema, or a custom one given with --schema, and optionally reports completeness findings.",
	RunE:  runValidate,
}

var (
	validateInput   string
	validateSchema  string
	validateReport  bool
	validateVerbose bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to ResumeDocument JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Validate against this JSON Schema file instead of the embedded one")
	validateCmd.Flags().BoolVar(&validateReport, "report", false, "Print completeness findings as JSON")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print findings as a summary box to stderr")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	validateFile := schemas.ValidateResumeFile
	if validateSchema != "" {
		validateFile = func(path string) error { return schemas.ValidateJSON(validateSchema, path) }
	}

	if err := validateFile(validateInput); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %s\n", validateInput)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateInput)

	if !validateReport && !validateVerbose {
		return nil
	}

	violations, err := validation.ValidateDocumentFile(validateInput, validation.Options{MaxBulletChars: appConfig.MaxBulletChars})
	if err != nil {
		return err
	}
	if validateVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintViolations(violations)
	}
	if validateReport {
		data, err := json.MarshalIndent(violations, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}
	return nil
}
