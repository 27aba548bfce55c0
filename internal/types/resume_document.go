// Package types provides type definitions for structured data used throughout the resume-structurer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDocument is the canonical structured resume. Every field is always
// populated: absence is an empty string or an empty slice, never nil.
type ResumeDocument struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []SkillGroup `json:"skills"`
}

// Experience represents a single work history entry
type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

// Education represents a single degree entry
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// SkillGroup represents a labeled list of skills
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// NewResumeDocument returns an empty document with all slices initialized.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []SkillGroup{},
	}
}

// EnsureNonNil replaces nil slices, including nested bullets and items, with empty ones
// so the document always encodes as arrays rather than null.
func (d *ResumeDocument) EnsureNonNil() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []SkillGroup{}
	}
	for i := range d.Experience {
		if d.Experience[i].Bullets == nil {
			d.Experience[i].Bullets = []string{}
		}
	}
	for i := range d.Skills {
		if d.Skills[i].Items == nil {
			d.Skills[i].Items = []string{}
		}
	}
}
