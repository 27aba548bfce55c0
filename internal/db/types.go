package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-structurer/internal/types"
)

// ParsedResume is a row of parsed_resumes
type ParsedResume struct {
	ID          uuid.UUID            `json:"id"`
	Source      string               `json:"source"`
	ContentHash string               `json:"content_hash"`
	RawText     string               `json:"raw_text,omitempty"`
	Document    types.ResumeDocument `json:"document"`
	Origin      string               `json:"origin"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ParsedResumeInput contains the fields needed to store a parse result
type ParsedResumeInput struct {
	Source      string
	ContentHash string
	RawText     string
	Document    types.ResumeDocument
	Origin      string
}

// StructuredResume is a row of structured_resumes
type StructuredResume struct {
	ResumeID  uuid.UUID            `json:"resume_id"`
	Document  types.ResumeDocument `json:"document"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ListOptions contains pagination options for listing parsed resumes
type ListOptions struct {
	Limit  int // Maximum results (default 50, max 100)
	Offset int // Pagination offset
}

// Pagination bounds for ListParsedResumes.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// normalize clamps the limit and offset into the supported range.
func (o ListOptions) normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
