package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-structurer/internal/types"
)

// DefaultDuration is used when an experience header carries no date range.
const DefaultDuration = "Date Range"

// minUnmarkedBulletChars is the length an unmarked line must exceed to count as a bullet.
const minUnmarkedBulletChars = 10

var segmentSeparator = regexp.MustCompile(`\n[ \t]*\n`)

// extractExperience parses the experience section. Block segmentation always
// takes priority; the line-by-line scan only runs when it yields nothing.
func extractExperience(text string) []types.Experience {
	block, ok := captureSection(text, experienceSection)
	if !ok {
		return []types.Experience{}
	}

	entries := firstMatch(
		func() []types.Experience { return experienceFromSegments(block) },
		func() []types.Experience { return experienceFromLines(block) },
	)
	if entries == nil {
		return []types.Experience{}
	}
	return entries
}

// experienceFromSegments treats each blank-line separated segment as one job.
func experienceFromSegments(block string) []types.Experience {
	var entries []types.Experience

	for _, segment := range segmentSeparator.Split(block, -1) {
		lines := strings.Split(segment, "\n")

		headerIdx := -1
		for i, line := range lines {
			if isHeaderLine(line) {
				headerIdx = i
				break
			}
		}
		if headerIdx < 0 {
			continue
		}

		entry, ok := parseHeader(lines[headerIdx])
		if !ok {
			continue
		}

		for _, line := range lines[headerIdx+1:] {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
			case isBulletLine(trimmed):
				if bullet := stripBullet(trimmed); bullet != "" {
					entry.Bullets = append(entry.Bullets, bullet)
				}
			case !strings.Contains(trimmed, "|") && utf8.RuneCountInString(trimmed) > minUnmarkedBulletChars:
				entry.Bullets = append(entry.Bullets, trimmed)
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

// experienceScanner is the line-by-line fallback. It has two states: no open
// entry, and an open entry that collects bullets until the next header.
type experienceScanner struct {
	open    bool
	current types.Experience
	entries []types.Experience
}

// openEntry flushes any open entry and starts a new one from a header line.
func (s *experienceScanner) openEntry(line string) {
	s.flush()
	s.current, _ = parseHeader(line)
	s.open = true
}

func (s *experienceScanner) addBullet(line string) {
	if !s.open {
		return
	}
	if bullet := stripBullet(line); bullet != "" {
		s.current.Bullets = append(s.current.Bullets, bullet)
	}
}

// flush emits the open entry if it has both a company and a title.
func (s *experienceScanner) flush() {
	if s.open && s.current.Company != "" && s.current.Title != "" {
		s.entries = append(s.entries, s.current)
	}
	s.open = false
	s.current = types.Experience{}
}

func experienceFromLines(block string) []types.Experience {
	scanner := &experienceScanner{}
	for _, line := range strings.Split(block, "\n") {
		switch {
		case isHeaderLine(line):
			scanner.openEntry(line)
		case isBulletLine(line):
			scanner.addBullet(line)
		}
	}
	scanner.flush()
	return scanner.entries
}

// isHeaderLine reports whether a line is a pipe-delimited job header.
// Bullet lines are never headers, even when they contain a pipe.
func isHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.Contains(trimmed, "|") && !isBulletLine(trimmed)
}

// parseHeader reads "Company | Title [| Duration]". The boolean reports
// whether both company and title are present.
func parseHeader(line string) (types.Experience, bool) {
	parts := splitTrim(line, "|")
	entry := types.Experience{Duration: DefaultDuration, Bullets: []string{}}
	if len(parts) < 2 {
		return entry, false
	}

	entry.Company = parts[0]
	entry.Title = parts[1]
	if len(parts) > 2 && parts[2] != "" {
		entry.Duration = parts[2]
	}
	return entry, entry.Company != "" && entry.Title != ""
}

func splitTrim(line, sep string) []string {
	parts := strings.Split(strings.TrimSpace(line), sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
