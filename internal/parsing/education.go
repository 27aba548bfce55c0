package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-structurer/internal/types"
)

// DefaultYear is used when an education entry carries no year.
const DefaultYear = "N/A"

var dashSeparator = regexp.MustCompile(`\s+[-–—]\s+`)

// educationGrammar parses one line, reporting whether it matched.
type educationGrammar func(line string) (types.Education, bool)

// educationGrammars are tried in priority order over the whole block.
var educationGrammars = []educationGrammar{
	commaEducation,
	pipeEducation,
	dashEducation,
}

// extractEducation applies the grammars in order and keeps every match of the
// first grammar that matches at least one line.
func extractEducation(text string) []types.Education {
	block, ok := captureSection(text, educationSection)
	if !ok {
		return []types.Education{}
	}
	lines := strings.Split(block, "\n")

	strategies := make([]func() []types.Education, 0, len(educationGrammars))
	for _, grammar := range educationGrammars {
		strategies = append(strategies, func() []types.Education {
			return applyGrammar(grammar, lines)
		})
	}

	entries := firstMatch(strategies...)
	if entries == nil {
		return []types.Education{}
	}
	for i := range entries {
		entries[i] = finishEducation(entries[i])
	}
	return entries
}

func applyGrammar(grammar educationGrammar, lines []string) []types.Education {
	var entries []types.Education
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if entry, ok := grammar(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// commaEducation reads "Degree, School[, Year]".
func commaEducation(line string) (types.Education, bool) {
	text := stripBullet(line)
	if strings.Contains(text, "|") {
		return types.Education{}, false
	}
	parts := splitTrim(text, ",")
	if len(parts) < 2 || len(parts) > 3 || !allNonEmpty(parts) {
		return types.Education{}, false
	}

	entry := types.Education{Degree: parts[0], School: parts[1]}
	if len(parts) == 3 {
		entry.Year = parts[2]
	}
	return entry, true
}

// pipeEducation reads "School | Degree | Year".
func pipeEducation(line string) (types.Education, bool) {
	parts := splitTrim(stripBullet(line), "|")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" {
		return types.Education{}, false
	}
	return types.Education{School: parts[0], Degree: parts[1], Year: parts[2]}, true
}

// dashEducation reads "Degree [- School] [- Year]" on a line starting with a capital letter.
func dashEducation(line string) (types.Education, bool) {
	text := strings.TrimSpace(line)
	first, _ := firstRune(text)
	if !unicode.IsUpper(first) {
		return types.Education{}, false
	}

	parts := dashSeparator.Split(text, 3)
	entry := types.Education{Degree: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		entry.School = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		entry.Year = strings.TrimSpace(parts[2])
	}
	return entry, entry.Degree != ""
}

// finishEducation swaps degree and school when the degree names an
// institution, and fills a missing year.
func finishEducation(entry types.Education) types.Education {
	degree := strings.ToLower(entry.Degree)
	if strings.Contains(degree, "university") || strings.Contains(degree, "college") {
		entry.Degree, entry.School = entry.School, entry.Degree
	}
	if entry.Year == "" {
		entry.Year = DefaultYear
	}
	return entry
}

func allNonEmpty(parts []string) bool {
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
