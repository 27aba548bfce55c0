package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

// ImplicitSkillCategory collects bullet items that appear without a category label.
const ImplicitSkillCategory = "Technical Skills"

var itemSeparator = regexp.MustCompile(`[,;]`)

// extractSkills classifies lines of the skills section into labeled groups.
// "Label: a, b; c" starts a group; a bullet without a colon joins the
// implicit group; any other line is ignored.
func extractSkills(text string) []types.SkillGroup {
	groups := []types.SkillGroup{}

	block, ok := captureSection(text, skillsSection)
	if !ok {
		return groups
	}

	implicit := -1
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.Contains(trimmed, ":"):
			label, rest, _ := strings.Cut(trimmed, ":")
			category := stripBullet(label)
			if category == "" {
				continue
			}
			groups = append(groups, types.SkillGroup{Category: category, Items: splitItems(rest)})
		case isBulletLine(trimmed):
			item := stripBullet(trimmed)
			if item == "" {
				continue
			}
			if implicit < 0 {
				groups = append(groups, types.SkillGroup{Category: ImplicitSkillCategory, Items: []string{}})
				implicit = len(groups) - 1
			}
			groups[implicit].Items = append(groups[implicit].Items, item)
		}
	}

	return groups
}

// splitItems splits a list on commas and semicolons, dropping empty items.
func splitItems(list string) []string {
	items := []string{}
	for _, item := range itemSeparator.Split(list, -1) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
