// Package types provides type definitions for structured data used throughout the resume-structurer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation represents a single completeness finding about a parsed document
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	CharCount        *int     `json:"char_count,omitempty"`

	// Location of the offending entry, when the finding is about one entry
	EntryIndex *int    `json:"entry_index,omitempty"`
	BulletText *string `json:"bullet_text,omitempty"`
}

// Violations represents a collection of findings
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasSeverity reports whether any violation has the given severity.
func (v *Violations) HasSeverity(severity string) bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == severity {
			return true
		}
	}
	return false
}
