// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIngestion outputs where a document came from.
func (p *Printer) PrintIngestion(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", meta.Source))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", meta.Format))
	sb.WriteString(fmt.Sprintf("Size:     %d chars, %d lines\n", meta.Chars, meta.Lines))
	sb.WriteString(fmt.Sprintf("Hash:     %s", truncate(meta.Hash, 16)))

	p.printBox("INGESTED", sb.String())
}

// PrintResumeDocument outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResumeDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(doc.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(doc.Phone)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(doc.Location)))
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", doc.Summary))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
	count := min(len(doc.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := doc.Experience[i]
		sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Title, exp.Company))
		sb.WriteString(fmt.Sprintf("    %s, %d bullets\n", exp.Duration, len(exp.Bullets)))
	}
	if len(doc.Experience) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", len(doc.Education)))
		for _, edu := range doc.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", edu.Degree, edu.School, edu.Year))
		}
	}

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d groups):\n", len(doc.Skills)))
		for _, group := range doc.Skills {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", group.Category, strings.Join(group.Items, ", ")))
		}
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs the completeness report for a document.
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil {
		return
	}
	if len(violations.Violations) == 0 {
		p.printBox("COMPLETENESS", "No issues found")
		return
	}

	var sb strings.Builder
	for i, v := range violations.Violations {
		if i == maxItemsToShow*2 {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(violations.Violations)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", v.Severity, v.Type))
		sb.WriteString(fmt.Sprintf("    %s\n", v.Details))
	}

	p.printBox(fmt.Sprintf("COMPLETENESS (%d issues)", len(violations.Violations)), strings.TrimSuffix(sb.String(), "\n"))
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
