package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/logger"
	"github.com/jonathan/resume-structurer/internal/observability"
	"github.com/jonathan/resume-structurer/internal/resumes"
	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/jonathan/resume-structurer/internal/validation"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse resume files into ResumeDocument JSON",
	Long: `Parse one or more resume files into ResumeDocument JSON.

A single input prints one document. Several inputs are parsed concurrently
and print a JSON array in input order. When --out names a directory, each
document is written to <name>.json inside it instead.`,
	RunE: runParse,
}

var (
	parseInputs          []string
	parseOutput          string
	parseClean           bool
	parseNormalizeSkills bool
	parseReport          bool
	parseVerbose         bool
)

func init() {
	parseCmd.Flags().StringArrayVarP(&parseInputs, "in", "i", nil, "Resume file to parse (repeatable, required)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output file or directory (default stdout)")
	parseCmd.Flags().BoolVar(&parseClean, "clean", false, "Normalize whitespace and bullets before parsing")
	parseCmd.Flags().BoolVar(&parseNormalizeSkills, "normalize-skills", false, "Canonicalize and dedupe skill names")
	parseCmd.Flags().BoolVar(&parseReport, "report", false, "Include a completeness report with each document")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	if err := parseCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

// parseResult is one entry of the command output.
type parseResult struct {
	Source   string               `json:"source"`
	Document types.ResumeDocument `json:"document"`
	Report   *types.Violations    `json:"report,omitempty"`
}

func runParse(cmd *cobra.Command, _ []string) error {
	inputs := make([]resumes.BatchInput, 0, len(parseInputs))
	metas := make([]*ingestion.Metadata, 0, len(parseInputs))
	for _, path := range parseInputs {
		text, meta, err := ingestion.ExtractText(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, resumes.BatchInput{Source: path, Text: text})
		metas = append(metas, meta)
	}

	svc := resumes.NewService(nil, appConfig.BatchConcurrency)
	opts := resumes.ParseOptions{
		Clean:           parseClean || appConfig.CleanInput,
		NormalizeSkills: parseNormalizeSkills || appConfig.NormalizeSkills,
	}

	batch, err := svc.ParseBatch(cmd.Context(), inputs, opts)
	if err != nil {
		return fmt.Errorf("failed to parse resumes: %w", err)
	}

	results := make([]parseResult, 0, len(batch))
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for i, item := range batch {
		result := parseResult{Source: item.Source, Document: item.Document}
		if parseReport {
			result.Report = validation.ValidateDocument(item.Document, validation.Options{MaxBulletChars: appConfig.MaxBulletChars})
		}
		results = append(results, result)

		if parseVerbose {
			printer.PrintIngestion(metas[i])
			printer.PrintResumeDocument(&result.Document)
			printer.PrintViolations(result.Report)
		}
		event := logger.Debug().Str("source", item.Source).Int("experience", len(item.Document.Experience))
		if raw, err := metas[i].ToJSON(); err == nil {
			event = event.RawJSON("metadata", raw)
		}
		event.Msg("parsed resume")
	}

	if parseOutput != "" && isDirTarget(parseOutput) {
		return writeDir(cmd.OutOrStdout(), parseOutput, results)
	}

	var payload any = results
	if len(results) == 1 {
		payload = singleOutput(results[0])
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if parseOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(parseOutput, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d document(s) to %s\n", len(results), parseOutput)
	return nil
}

// singleOutput is the bare document, or the document with its report.
func singleOutput(result parseResult) any {
	if result.Report == nil {
		return result.Document
	}
	return types.ParseResponse{Document: result.Document, Report: result.Report}
}

// isDirTarget reports whether out names a directory: an existing one, or a
// path ending in a separator.
func isDirTarget(out string) bool {
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(out)
	return err == nil && info.IsDir()
}

// writeDir writes each result to <dir>/<input base name>.json. Repeated
// base names get a numeric suffix.
func writeDir(stdout io.Writer, dir string, results []parseResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]int)
	for _, result := range results {
		base := filepath.Base(result.Source)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		data, err := json.MarshalIndent(singleOutput(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", result.Source, err)
		}
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	return nil
}
