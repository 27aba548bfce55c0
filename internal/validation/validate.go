// Package validation reports how complete a parsed resume document is.
//
// Findings never block a parse: they describe placeholders that were
// inserted, contact details that are missing, and entries that look wrong.
package validation

import (
	"encoding/json"
	"os"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Severities used in findings.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Violation types.
const (
	TypePlaceholderName       = "placeholder_name"
	TypePlaceholderExperience = "placeholder_experience"
	TypeMissingEmail          = "missing_email"
	TypeInvalidEmail          = "invalid_email"
	TypeMissingPhone          = "missing_phone"
	TypeMissingSection        = "missing_section"
	TypeBulletTooLong         = "bullet_too_long"
)

// DefaultMaxBulletChars is the bullet length above which a bullet is reported.
const DefaultMaxBulletChars = 300

// Options tunes the checks. The zero value uses the defaults.
type Options struct {
	MaxBulletChars int
}

func (o Options) maxBulletChars() int {
	if o.MaxBulletChars <= 0 {
		return DefaultMaxBulletChars
	}
	return o.MaxBulletChars
}

// ValidateDocument runs every completeness check against doc. The result is
// never nil; an empty Violations slice means nothing was found.
func ValidateDocument(doc types.ResumeDocument, opts Options) *types.Violations {
	allViolations := []types.Violation{}

	// 1. Placeholders inserted by the defaulting pass
	allViolations = append(allViolations, checkPlaceholders(doc)...)

	// 2. Contact details
	allViolations = append(allViolations, checkContact(doc)...)

	// 3. Sections that came back empty
	allViolations = append(allViolations, checkSections(doc)...)

	// 4. Overlong bullets
	allViolations = append(allViolations, checkBulletLengths(doc, opts.maxBulletChars())...)

	return &types.Violations{Violations: allViolations}
}

// ValidateDocumentFile reads a serialized ResumeDocument and validates it.
func ValidateDocumentFile(path string, opts Options) (*types.Violations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentFileError{Path: path, Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentFileError{Path: path, Malformed: true, Cause: err}
	}
	doc.EnsureNonNil()

	return ValidateDocument(doc, opts), nil
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}
