package db

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"zero uses default", ListOptions{}, ListOptions{Limit: DefaultListLimit}},
		{"limit capped", ListOptions{Limit: 500, Offset: 10}, ListOptions{Limit: MaxListLimit, Offset: 10}},
		{"negative offset", ListOptions{Limit: 5, Offset: -3}, ListOptions{Limit: 5}},
		{"in range", ListOptions{Limit: 20, Offset: 40}, ListOptions{Limit: 20, Offset: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalize())
		})
	}
}

func TestParsedResume_JSON(t *testing.T) {
	p := ParsedResume{
		Source:      "resume.pdf",
		ContentHash: "abc",
		Document:    types.NewResumeDocument(),
		Origin:      types.OriginHeuristic,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"content_hash":"abc"`)
	assert.Contains(t, s, `"origin":"heuristic"`)
	assert.NotContains(t, s, "raw_text", "empty raw text is omitted from listings")
}

func TestSchemaSQL_CreatesTables(t *testing.T) {
	assert.True(t, strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS parsed_resumes"))
	assert.True(t, strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS structured_resumes"))
}
