package parsing

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured_Aliases(t *testing.T) {
	input := `{
		"fullName": "Ada Lovelace",
		"phoneNumber": "555-000-1111",
		"address": "London",
		"professionalSummary": "Analyst",
		"workExperience": [{
			"position": "Engineer",
			"employer": "Analytical Engines",
			"startDate": "1842",
			"endDate": "1843",
			"achievements": ["Wrote the first program"]
		}],
		"education": [{"degree": "Mathematics", "institution": "Home", "graduationYear": 1835}],
		"skills": ["Math", "Poetry"]
	}`

	doc, err := ParseStructured(input)
	require.NoError(t, err)

	assert.Equal(t, types.ResumeDocument{
		Name:     "Ada Lovelace",
		Phone:    "555-000-1111",
		Location: "London",
		Summary:  "Analyst",
		Experience: []types.Experience{{
			Title:    "Engineer",
			Company:  "Analytical Engines",
			Duration: "1842 - 1843",
			Bullets:  []string{"Wrote the first program"},
		}},
		Education: []types.Education{{Degree: "Mathematics", School: "Home", Year: "1835"}},
		Skills:    []types.SkillGroup{{Category: ImplicitSkillCategory, Items: []string{"Math", "Poetry"}}},
	}, doc)
}

func TestParseStructured_EmptyAliasFallsBack(t *testing.T) {
	doc, err := ParseStructured(`{"name": "  ", "fullName": "Grace Hopper"}`)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", doc.Name)
}

func TestParseStructured_NestedDefaults(t *testing.T) {
	doc, err := ParseStructured(`{"experience": [{"title": "Dev"}, "not an object"]}`)
	require.NoError(t, err)

	require.Len(t, doc.Experience, 1)
	assert.Equal(t, types.Experience{Title: "Dev", Bullets: []string{}}, doc.Experience[0])
	assert.Equal(t, PlaceholderName, doc.Name)
}

func TestMapSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.SkillGroup
	}{
		{
			name:  "list of groups",
			input: `{"skills": [{"category": "Languages", "items": ["Go", "Rust"]}]}`,
			want:  []types.SkillGroup{{Category: "Languages", Items: []string{"Go", "Rust"}}},
		},
		{
			name:  "object keyed by category",
			input: `{"skills": {"Tools": ["Docker"], "Languages": ["Go"]}}`,
			want: []types.SkillGroup{
				{Category: "Languages", Items: []string{"Go"}},
				{Category: "Tools", Items: []string{"Docker"}},
			},
		},
		{
			name:  "delimited string",
			input: `{"skills": "Go, Rust; SQL"}`,
			want:  []types.SkillGroup{{Category: ImplicitSkillCategory, Items: []string{"Go", "Rust", "SQL"}}},
		},
		{
			name:  "mixed list",
			input: `{"skills": [{"name": "Cloud", "skills": "AWS"}, "Go"]}`,
			want: []types.SkillGroup{
				{Category: "Cloud", Items: []string{"AWS"}},
				{Category: ImplicitSkillCategory, Items: []string{"Go"}},
			},
		},
		{
			name:  "unsupported shape",
			input: `{"skills": 42}`,
			want:  []types.SkillGroup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseStructured(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Skills)
		})
	}
}

func TestParseStructured_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "Jane Doe"},
		{"array", `["Jane Doe"]`},
		{"null", "null"},
		{"malformed", `{"name": `},
		{"trailing data", `{"name": "Jane"} {"name": "John"}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructured(tt.input)
			require.Error(t, err)

			var inputErr *StructuredInputError
			assert.True(t, errors.As(err, &inputErr))
			assert.False(t, IsStructured(tt.input))
		})
	}
}

func TestStructuredInputError_Unwrap(t *testing.T) {
	_, err := ParseStructured(`{"name": `)
	require.Error(t, err)

	var inputErr *StructuredInputError
	require.True(t, errors.As(err, &inputErr))
	assert.NotNil(t, errors.Unwrap(inputErr))
	assert.Contains(t, err.Error(), "failed to decode JSON")
}
