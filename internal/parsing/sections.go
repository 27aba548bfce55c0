package parsing

import (
	"strings"
	"unicode"
)

// sectionSpec describes how to locate one resume section.
type sectionSpec struct {
	headings []string // start headings, tried in order; first found wins
	stops    []string // keywords whose heading ends the section

	inlineKeepsLine bool // an inline heading line is itself content ("Skills: Go, SQL")
}

var (
	summarySection = sectionSpec{
		headings: []string{"PROFESSIONAL SUMMARY", "SUMMARY", "CAREER OBJECTIVE", "OBJECTIVE", "PROFILE"},
		stops:    []string{"EXPERIENCE", "EDUCATION", "SKILLS", "CERTIFICATIONS", "COMPETENCIES"},
	}
	experienceSection = sectionSpec{
		headings: []string{"PROFESSIONAL EXPERIENCE", "WORK EXPERIENCE", "EXPERIENCE"},
		stops:    []string{"EDUCATION", "SKILLS", "CERTIFICATIONS", "SUMMARY"},
	}
	educationSection = sectionSpec{
		headings: []string{"EDUCATION"},
		stops:    []string{"SKILLS", "CERTIFICATIONS", "EXPERIENCE"},
	}
	skillsSection = sectionSpec{
		headings: []string{"TECHNICAL SKILLS", "SKILLS", "CORE COMPETENCIES"},
		stops:    []string{"EDUCATION", "CERTIFICATIONS", "EXPERIENCE"},

		inlineKeepsLine: true,
	}

	allSections = []sectionSpec{summarySection, experienceSection, educationSection, skillsSection}
)

// maxHeadingWords bounds how long a heading line may be.
const maxHeadingWords = 5

// headingConnectors may appear lowercase inside a title-case heading.
var headingConnectors = map[string]bool{"and": true, "of": true, "&": true, "the": true, "/": true}

// captureSection returns the lines between the section heading and the next
// stop heading (or end of text). The boolean is false when no heading matched.
// Headings on a line of their own are preferred; a heading sharing its line
// with content ("SUMMARY: Backend engineer") is only used when none exists.
func captureSection(text string, spec sectionSpec) (string, bool) {
	lines := strings.Split(text, "\n")

	for _, inline := range []bool{false, true} {
		for _, heading := range spec.headings {
			for i, line := range lines {
				first, ok := openSection(line, heading, inline, spec.inlineKeepsLine)
				if !ok {
					continue
				}

				end := len(lines)
				for j := i + 1; j < len(lines); j++ {
					if isStopHeading(lines[j], spec.stops) {
						end = j
						break
					}
				}

				body := make([]string, 0, end-i)
				if first != "" {
					body = append(body, first)
				}
				body = append(body, lines[i+1:end]...)
				return strings.Join(body, "\n"), true
			}
		}
	}

	return "", false
}

// openSection reports whether line opens a section under heading. For an
// inline heading, first is the content that shares its line.
func openSection(line, heading string, inline, keepLine bool) (first string, ok bool) {
	if !inline {
		label, ok := headingLabel(line)
		return "", ok && headingMatches(label, heading)
	}

	label, rest, ok := inlineHeading(line)
	if !ok || !headingMatches(label, heading) {
		return "", false
	}
	if keepLine {
		return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")), true
	}
	return rest, true
}

// inlineHeading splits "LABEL: content" at the first colon, reporting whether
// the label could be a heading and the content is non-empty.
func inlineHeading(line string) (label, rest string, ok bool) {
	prefix, rest, found := strings.Cut(strings.TrimSpace(line), ":")
	rest = strings.TrimSpace(rest)
	if !found || rest == "" {
		return "", "", false
	}
	label, ok = headingLabel(prefix)
	return label, rest, ok
}

// headingMatches reports whether label is heading, or a heading-shaped label
// containing heading as whole words ("RELEVANT EXPERIENCE", "Education and Training").
func headingMatches(label, heading string) bool {
	if strings.EqualFold(label, heading) {
		return true
	}
	if !isHeadingShaped(label) {
		return false
	}
	return containsWords(headingWords(label), strings.Fields(heading))
}

// headingWords upper-cases label and splits it on anything but letters.
func headingWords(label string) []string {
	return strings.FieldsFunc(strings.ToUpper(label), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// containsWords reports whether want appears as a contiguous run in words.
func containsWords(words, want []string) bool {
	for i := 0; i+len(want) <= len(words); i++ {
		match := true
		for j, w := range want {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// headingLabel strips markdown markers and a trailing colon from a line and
// reports whether what remains is short enough to be a heading.
func headingLabel(line string) (string, bool) {
	label := strings.TrimSpace(line)
	label = strings.TrimSpace(strings.TrimLeft(label, "#"))
	label = strings.TrimSpace(strings.TrimSuffix(label, ":"))
	if label == "" || isBulletLine(label) {
		return "", false
	}
	if strings.ContainsAny(label, "|,:") || strings.IndexFunc(label, unicode.IsDigit) >= 0 {
		return "", false
	}
	if len(strings.Fields(label)) > maxHeadingWords {
		return "", false
	}
	return label, true
}

// isHeadingShaped reports whether a label is all caps or title case.
func isHeadingShaped(label string) bool {
	if strings.IndexFunc(label, unicode.IsLetter) < 0 {
		return false
	}
	if strings.ToUpper(label) == label {
		return true
	}
	for _, word := range strings.Fields(label) {
		if headingConnectors[strings.ToLower(word)] {
			continue
		}
		first := []rune(word)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

// isStopHeading reports whether line is a heading containing one of the stop
// keywords. An inline heading stops a section only when its label is all caps
// and names a stop keyword or a known section, so per-job lines such as
// "Skills: Go, SQL" stay inside their entry.
func isStopHeading(line string, stops []string) bool {
	label, ok := headingLabel(line)
	if !ok {
		inlineLabel, _, inline := inlineHeading(line)
		if !inline || strings.ToUpper(inlineLabel) != inlineLabel || !isKnownLabel(inlineLabel, stops) {
			return false
		}
		label = inlineLabel
	}

	for _, stop := range stops {
		if headingMatches(label, stop) {
			return true
		}
	}
	return false
}

func isKnownLabel(label string, stops []string) bool {
	for _, stop := range stops {
		if strings.EqualFold(label, stop) {
			return true
		}
	}
	return isSectionHeading(label)
}

// isSectionHeading reports whether line is the start heading of any known section.
func isSectionHeading(line string) bool {
	label, ok := headingLabel(line)
	if !ok {
		return false
	}
	for _, spec := range allSections {
		for _, heading := range spec.headings {
			if headingMatches(label, heading) {
				return true
			}
		}
	}
	return false
}

// bulletMarkers are the recognized list markers.
var bulletMarkers = []string{"•", "-", "*"}

func isBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// stripBullet removes one leading bullet marker and surrounding whitespace.
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		}
	}
	return trimmed
}
