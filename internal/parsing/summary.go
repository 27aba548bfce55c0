package parsing

import (
	"strings"
)

// extractSummary returns the text under a summary or objective heading,
// joined into a single line.
func extractSummary(text string) string {
	block, ok := captureSection(text, summarySection)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(block), " ")
}
