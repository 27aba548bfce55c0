package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Placeholders inserted when nothing usable was extracted.
const (
	PlaceholderName     = "Professional Name"
	PlaceholderTitle    = "Professional Role"
	PlaceholderCompany  = "Company Name"
	PlaceholderBullet1  = "Key achievement from your optimized resume"
	PlaceholderBullet2  = "Another important accomplishment"
	summaryMinChars     = 50
	summaryMaxChars     = 300
	synthesisMinChars   = 100
	summaryTruncateMark = "..."
)

var paragraphNewlines = regexp.MustCompile(`[ \t]*\n[ \t]*`)

// applyDefaults fills fields that are still empty after extraction. Length
// thresholds count characters of the raw input.
func applyDefaults(doc *types.ResumeDocument, raw, text string) {
	rawChars := utf8.RuneCountInString(raw)

	if doc.Name == "" {
		doc.Name = PlaceholderName
	}

	if doc.Summary == "" && rawChars > summaryMinChars {
		doc.Summary = fallbackSummary(text)
	}

	if len(doc.Experience) == 0 && rawChars > synthesisMinChars {
		doc.Experience = []types.Experience{PlaceholderExperience()}
	}
}

// PlaceholderExperience returns the entry synthesized when no experience
// could be extracted from a long enough input.
func PlaceholderExperience() types.Experience {
	return types.Experience{
		Title:    PlaceholderTitle,
		Company:  PlaceholderCompany,
		Duration: DefaultDuration,
		Bullets:  []string{PlaceholderBullet1, PlaceholderBullet2},
	}
}

// fallbackSummary takes the first paragraph longer than summaryMinChars,
// flattened to one line and truncated to summaryMaxChars.
func fallbackSummary(text string) string {
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if utf8.RuneCountInString(paragraph) <= summaryMinChars {
			continue
		}

		flat := paragraphNewlines.ReplaceAllString(paragraph, " ")
		runes := []rune(flat)
		if len(runes) > summaryMaxChars {
			return string(runes[:summaryMaxChars]) + summaryTruncateMark
		}
		return flat
	}
	return ""
}
