// Package ingestion turns resume files and uploads into clean plain text
// ready for the parsing engine.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerWhitespace = regexp.MustCompile(`[ \t]+`)
	excessBlank     = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")

	// A single blank line is meaningful to the parser (it separates entries),
	// so runs are compressed rather than removed.
	result = excessBlank.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	content := innerWhitespace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		return normalizeBullet(content)
	}

	indent := len(line) - len(trimmed)
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// bulletPrefixes are the list markers preserved by CleanText.
var bulletPrefixes = []string{"- ", "* ", "• ", "· "}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// normalizeBullet rewrites the middle dot marker to the standard bullet and
// drops indentation, which is unreliable in extracted documents.
func normalizeBullet(line string) string {
	if rest, ok := strings.CutPrefix(line, "· "); ok {
		return "• " + rest
	}
	return line
}
