package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleDocument() *types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.Name = "Jane Doe"
	doc.Email = "jane@example.com"
	doc.Experience = []types.Experience{
		{Company: "Acme Corp", Title: "Senior Engineer", Duration: "2020 - Present", Bullets: []string{"Built things", "Ran things"}},
	}
	doc.Education = []types.Education{{Degree: "BS Computer Science", School: "State University", Year: "2015"}}
	doc.Skills = []types.SkillGroup{{Category: "Languages", Items: []string{"Go", "Python"}}}
	return &doc
}

func TestPrintResumeDocument(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeDocument(sampleDocument())
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Phone:    -")
	assert.Contains(t, output, "Senior Engineer, Acme Corp")
	assert.Contains(t, output, "2020 - Present, 2 bullets")
	assert.Contains(t, output, "BS Computer Science, State University (2015)")
	assert.Contains(t, output, "Languages: Go, Python")
}

func TestPrintResumeDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeDocument(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResumeDocument_ManyExperiences(t *testing.T) {
	doc := sampleDocument()
	for i := range 7 {
		doc.Experience = append(doc.Experience, types.Experience{Company: fmt.Sprintf("Co %d", i), Title: "Engineer"})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeDocument(doc)

	assert.Contains(t, buf.String(), "Experience (8):")
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	doc := sampleDocument()
	doc.Summary = strings.Repeat("Distributed systems • ", 10)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeDocument(doc)

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "missing_phone", Severity: "info", Details: "no phone number found"},
	}})
	assert.Contains(t, buf.String(), "COMPLETENESS (1 issues)")
	assert.Contains(t, buf.String(), "[info] missing_phone")

	buf.Reset()
	p.PrintViolations(&types.Violations{Violations: []types.Violation{}})
	assert.Contains(t, buf.String(), "No issues found")

	buf.Reset()
	p.PrintViolations(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIngestion(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIngestion(ingestion.NewMetadata("Jane Doe\nEngineer", "jane.txt", "txt"))

	assert.Contains(t, buf.String(), "INGESTED")
	assert.Contains(t, buf.String(), "jane.txt")
	assert.Contains(t, buf.String(), "2 lines")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
