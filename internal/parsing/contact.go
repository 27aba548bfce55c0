package parsing

import (
	"regexp"
	"strings"
)

// nameScanLines bounds how many non-blank leading lines are searched for a name.
const nameScanLines = 10

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:^|[^\d+])((?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})(?:\D|$)`)

	// Tried in order; the first pattern that matches anywhere wins.
	locationPatterns = []*regexp.Regexp{
		// City, ST[ ZIP]
		regexp.MustCompile(`\b([A-Z][a-zA-Z]+,[ \t]?[A-Z]{2}(?:[ \t]+\d{5}(?:-\d{4})?)?)\b`),
		// City City, ST
		regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+,[ \t]?[A-Z]{2})\b`),
		// Number Street, City, ST
		regexp.MustCompile(`\b(\d+[ \t]+[A-Z][A-Za-z. ]*?,[ \t]?[A-Z][A-Za-z ]*?,[ \t]?[A-Z]{2})\b`),
	}

	capitalizedNamePattern = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]*(?:\s+[A-Z][a-zA-Z'.-]*){1,3}$`)
	allCapsNamePattern     = regexp.MustCompile(`^[A-Z][A-Z'.-]*(?:\s+[A-Z][A-Z'.-]*)*$`)
)

// contactInfo holds the contact fields found in the text.
type contactInfo struct {
	Email    string
	Phone    string
	Location string
}

func extractContact(text string) contactInfo {
	return contactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    extractPhone(text),
		Location: extractLocation(text),
	}
}

func extractPhone(text string) string {
	match := phonePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// extractLocation returns the first match of the first pattern that matches.
// When a later, longer pattern overlaps the start of that match, the match is
// widened to it so "San Francisco, CA" is not cut to "Francisco, CA".
func extractLocation(text string) string {
	for i, pattern := range locationPatterns {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		start, end := loc[2], loc[3]
		for _, wider := range locationPatterns[i+1:] {
			for _, w := range wider.FindAllStringSubmatchIndex(text, -1) {
				if w[2] < start && w[3] > start {
					start, end = w[2], max(end, w[3])
				}
			}
		}
		return strings.TrimSpace(text[start:end])
	}
	return ""
}

// extractName scans the leading lines for a name-shaped line. Lines carrying
// contact details or digits are skipped, as are section headings.
func extractName(text string) string {
	scanned := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if scanned == nameScanLines {
			break
		}
		scanned++

		if strings.ContainsAny(trimmed, "@|0123456789") || isSectionHeading(trimmed) {
			continue
		}
		if capitalizedNamePattern.MatchString(trimmed) || allCapsNamePattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}
