package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-structurer/internal/parsing"
	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDocument() types.ResumeDocument {
	return types.ResumeDocument{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-123-4567",
		Location: "Austin, TX",
		Summary:  "Backend engineer",
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme", Duration: "2020", Bullets: []string{"Built systems"}},
		},
		Education: []types.Education{{Degree: "BS", School: "MIT", Year: "2018"}},
		Skills:    []types.SkillGroup{{Category: "Languages", Items: []string{"Go"}}},
	}
}

func violationTypes(v *types.Violations) []string {
	result := []string{}
	for _, violation := range v.Violations {
		result = append(result, violation.Type)
	}
	return result
}

func TestValidateDocument_Complete(t *testing.T) {
	violations := ValidateDocument(completeDocument(), Options{})

	require.NotNil(t, violations)
	assert.NotNil(t, violations.Violations)
	assert.Empty(t, violations.Violations)
}

func TestValidateDocument_EmptyParse(t *testing.T) {
	violations := ValidateDocument(parsing.Parse(""), Options{})

	assert.Equal(t, []string{
		TypePlaceholderName,
		TypeMissingEmail,
		TypeMissingPhone,
		TypeMissingSection,
		TypeMissingSection,
		TypeMissingSection,
	}, violationTypes(violations))
	assert.True(t, violations.HasSeverity(SeverityWarning))
}

func TestValidateDocument_PlaceholderExperience(t *testing.T) {
	doc := completeDocument()
	doc.Experience = []types.Experience{parsing.PlaceholderExperience()}

	violations := ValidateDocument(doc, Options{})

	require.Len(t, violations.Violations, 1)
	v := violations.Violations[0]
	assert.Equal(t, TypePlaceholderExperience, v.Type)
	assert.Equal(t, SeverityWarning, v.Severity)
	require.NotNil(t, v.EntryIndex)
	assert.Equal(t, 0, *v.EntryIndex)
}

func TestValidateDocument_InvalidEmail(t *testing.T) {
	doc := completeDocument()
	doc.Email = "jane@"

	violations := ValidateDocument(doc, Options{})

	assert.Equal(t, []string{TypeInvalidEmail}, violationTypes(violations))
}

func TestValidateDocument_MissingSections(t *testing.T) {
	doc := completeDocument()
	doc.Summary = ""
	doc.Skills = []types.SkillGroup{}

	violations := ValidateDocument(doc, Options{})

	require.Len(t, violations.Violations, 2)
	assert.Equal(t, []string{"summary"}, violations.Violations[0].AffectedSections)
	assert.Equal(t, []string{"skills"}, violations.Violations[1].AffectedSections)
	assert.False(t, violations.HasSeverity(SeverityWarning))
}

func TestValidateDocument_BulletTooLong(t *testing.T) {
	long := strings.Repeat("é", 41)
	doc := completeDocument()
	doc.Experience = append(doc.Experience, types.Experience{
		Title: "Lead", Company: "Globex", Duration: "2021",
		Bullets: []string{"short", long},
	})

	violations := ValidateDocument(doc, Options{MaxBulletChars: 40})

	require.Len(t, violations.Violations, 1)
	v := violations.Violations[0]
	assert.Equal(t, TypeBulletTooLong, v.Type)
	assert.Equal(t, 41, *v.CharCount, "characters are counted as runes")
	assert.Equal(t, 1, *v.EntryIndex)
	assert.Equal(t, long, *v.BulletText)
}

func TestValidateDocument_DefaultBulletLimit(t *testing.T) {
	doc := completeDocument()
	doc.Experience[0].Bullets = []string{strings.Repeat("x", DefaultMaxBulletChars)}
	assert.Empty(t, ValidateDocument(doc, Options{}).Violations)

	doc.Experience[0].Bullets = []string{strings.Repeat("x", DefaultMaxBulletChars+1)}
	assert.Len(t, ValidateDocument(doc, Options{}).Violations, 1)
}

func TestValidateDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Jane Doe","email":"jane@example.com"}`), 0644))

	violations, err := ValidateDocumentFile(path, Options{})
	require.NoError(t, err)
	assert.Contains(t, violationTypes(violations), TypeMissingPhone)
	assert.NotContains(t, violationTypes(violations), TypePlaceholderName)
}

func TestValidateDocumentFile_Errors(t *testing.T) {
	_, err := ValidateDocumentFile("/nonexistent/doc.json", Options{})
	var fileErr *DocumentFileError
	require.True(t, errors.As(err, &fileErr))
	assert.False(t, fileErr.Malformed)
	assert.Equal(t, "/nonexistent/doc.json", fileErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err = ValidateDocumentFile(path, Options{})
	require.True(t, errors.As(err, &fileErr))
	assert.True(t, fileErr.Malformed)
	assert.Contains(t, err.Error(), "is not valid JSON")
}
