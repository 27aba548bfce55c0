package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-structurer/internal/parsing"
	"github.com/jonathan/resume-structurer/internal/types"
)

var validate = validator.New()

func checkPlaceholders(doc types.ResumeDocument) []types.Violation {
	var violations []types.Violation

	if doc.Name == parsing.PlaceholderName {
		violations = append(violations, types.Violation{
			Type:             TypePlaceholderName,
			Severity:         SeverityWarning,
			Details:          "No name was found; a placeholder was used",
			AffectedSections: []string{"name"},
		})
	}

	placeholder := parsing.PlaceholderExperience()
	for i, exp := range doc.Experience {
		if exp.Title == placeholder.Title && exp.Company == placeholder.Company {
			violations = append(violations, types.Violation{
				Type:             TypePlaceholderExperience,
				Severity:         SeverityWarning,
				Details:          "No experience entries were found; a placeholder entry was synthesized",
				AffectedSections: []string{"experience"},
				EntryIndex:       intPtr(i),
			})
		}
	}

	return violations
}

func checkContact(doc types.ResumeDocument) []types.Violation {
	var violations []types.Violation

	switch {
	case doc.Email == "":
		violations = append(violations, types.Violation{
			Type:             TypeMissingEmail,
			Severity:         SeverityWarning,
			Details:          "No email address was found",
			AffectedSections: []string{"email"},
		})
	case validate.Var(doc.Email, "email") != nil:
		violations = append(violations, types.Violation{
			Type:             TypeInvalidEmail,
			Severity:         SeverityWarning,
			Details:          fmt.Sprintf("Email %q is not a valid address", doc.Email),
			AffectedSections: []string{"email"},
		})
	}

	if doc.Phone == "" {
		violations = append(violations, types.Violation{
			Type:             TypeMissingPhone,
			Severity:         SeverityInfo,
			Details:          "No phone number was found",
			AffectedSections: []string{"phone"},
		})
	}

	return violations
}

func checkSections(doc types.ResumeDocument) []types.Violation {
	var violations []types.Violation

	missing := func(section string) {
		violations = append(violations, types.Violation{
			Type:             TypeMissingSection,
			Severity:         SeverityInfo,
			Details:          fmt.Sprintf("No %s section was found", section),
			AffectedSections: []string{section},
		})
	}

	if doc.Summary == "" {
		missing("summary")
	}
	if len(doc.Education) == 0 {
		missing("education")
	}
	if len(doc.Skills) == 0 {
		missing("skills")
	}

	return violations
}
