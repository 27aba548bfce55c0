package parsing

import (
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"golanglang": "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"react":      "React",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"gcp":        "GCP",
	"aws":        "AWS",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
}

// maxAcronymLen is the longest all-caps word kept as an acronym
const maxAcronymLen = 4

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	// Trim whitespace
	normalized := strings.TrimSpace(skillName)

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Handle case normalization for common patterns
	// If it's all uppercase, try to find a canonical form
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 {
		lowerCanonical, ok := skillNormalizations[lower]
		if ok {
			return lowerCanonical
		}
		// Short all-caps words are acronyms (SQL, REST); longer ones are shouted words
		if !strings.Contains(lower, " ") && len(normalized) > maxAcronymLen {
			return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
		}
	}

	// For skills starting with lowercase, capitalize first letter if it's a single word
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		// Already has mixed case, return as-is
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if normalized == strings.ToLower(normalized) && !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills canonicalizes skill names in every group and drops items
// that repeat within the same group. Groups keep their order.
func NormalizeSkills(doc *types.ResumeDocument) {
	for i := range doc.Skills {
		group := &doc.Skills[i]
		normalized := make([]string, 0, len(group.Items))
		seen := make(map[string]struct{})

		for _, item := range group.Items {
			canonical := NormalizeSkillName(item)
			if canonical == "" {
				continue
			}
			key := strings.ToLower(canonical)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			normalized = append(normalized, canonical)
		}

		group.Items = normalized
	}
}
