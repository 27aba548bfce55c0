package parsing

import (
	"testing"

	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.Education
	}{
		{
			name: "comma grammar",
			text: "EDUCATION\nBachelor of Science, State University, 2018",
			want: []types.Education{{Degree: "Bachelor of Science", School: "State University", Year: "2018"}},
		},
		{
			name: "comma grammar swaps institution into school",
			text: "EDUCATION\nState University, Bachelor of Science, 2018",
			want: []types.Education{{Degree: "Bachelor of Science", School: "State University", Year: "2018"}},
		},
		{
			name: "comma grammar without year",
			text: "EDUCATION\n• Associate of Arts, Springfield College",
			want: []types.Education{{Degree: "Associate of Arts", School: "Springfield College", Year: DefaultYear}},
		},
		{
			name: "pipe grammar",
			text: "EDUCATION\nMIT | Master of Science | 2020",
			want: []types.Education{{Degree: "Master of Science", School: "MIT", Year: "2020"}},
		},
		{
			name: "dash grammar",
			text: "EDUCATION\nMaster of Business Administration - Harvard Business School - 2015\nBachelor of Arts",
			want: []types.Education{
				{Degree: "Master of Business Administration", School: "Harvard Business School", Year: "2015"},
				{Degree: "Bachelor of Arts", School: "", Year: DefaultYear},
			},
		},
		{
			name: "dash grammar swaps college",
			text: "EDUCATION\nBoston College – Bachelor of Arts – 2012",
			want: []types.Education{{Degree: "Bachelor of Arts", School: "Boston College", Year: "2012"}},
		},
		{
			name: "first matching grammar wins",
			text: "EDUCATION\nB.S. Computer Science, Stanford, 2016\nCertificate in Data - Coursera - 2019",
			want: []types.Education{{Degree: "B.S. Computer Science", School: "Stanford", Year: "2016"}},
		},
		{
			name: "nothing matches",
			text: "EDUCATION\nself taught",
			want: []types.Education{},
		},
		{
			name: "no section",
			text: "Bachelor of Science, State University, 2018",
			want: []types.Education{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractEducation(tt.text))
		})
	}
}

func TestCommaEducation_RejectsTooManyParts(t *testing.T) {
	_, ok := commaEducation("Science, Math, Art, History")
	assert.False(t, ok)
}

func TestPipeEducation_NeedsThreeParts(t *testing.T) {
	_, ok := pipeEducation("MIT | Master of Science")
	assert.False(t, ok)
}
