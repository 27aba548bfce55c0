// Package parsing structures free-form resume text into a types.ResumeDocument.
//
// Parse is a pure function: it performs no I/O, keeps no state between calls
// and is safe to call concurrently on independent inputs. Each extraction
// stage reports "not found" instead of failing, so a missing section never
// blocks the others.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Parse converts resume text into a fully populated ResumeDocument.
// Input that is already a structured JSON object is mapped directly and the
// text heuristics are skipped.
func Parse(text string) types.ResumeDocument {
	if doc, err := ParseStructured(text); err == nil {
		return doc
	}
	return parseHeuristic(text)
}

// parseHeuristic runs the pattern-matching stages top to bottom.
func parseHeuristic(raw string) types.ResumeDocument {
	text := normalizeLineEndings(raw)
	doc := types.NewResumeDocument()

	contact := extractContact(text)
	doc.Email = contact.Email
	doc.Phone = contact.Phone
	doc.Location = contact.Location

	doc.Name = extractName(text)
	doc.Summary = extractSummary(text)
	doc.Experience = extractExperience(text)
	doc.Education = extractEducation(text)
	doc.Skills = extractSkills(text)

	applyDefaults(&doc, raw, text)
	doc.EnsureNonNil()
	return doc
}

// firstMatch runs strategies in order and returns the first non-empty result.
func firstMatch[T any](strategies ...func() []T) []T {
	for _, strategy := range strategies {
		if result := strategy(); len(result) > 0 {
			return result
		}
	}
	return nil
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
