package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/resume-structurer/internal/types"
)

// checkBulletLengths reports experience bullets longer than maxChars characters.
// Long bullets usually mean several lines were merged during extraction.
func checkBulletLengths(doc types.ResumeDocument, maxChars int) []types.Violation {
	var violations []types.Violation

	for i, exp := range doc.Experience {
		for _, bullet := range exp.Bullets {
			count := utf8.RuneCountInString(bullet)
			if count <= maxChars {
				continue
			}
			violations = append(violations, types.Violation{
				Type:             TypeBulletTooLong,
				Severity:         SeverityWarning,
				Details:          fmt.Sprintf("Bullet in entry %d has %d characters (max %d)", i, count, maxChars),
				AffectedSections: []string{"experience"},
				CharCount:        intPtr(count),
				EntryIndex:       intPtr(i),
				BulletText:       strPtr(bullet),
			})
		}
	}

	return violations
}
