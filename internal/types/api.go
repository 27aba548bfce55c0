// Package types provides type definitions for structured data used throughout the resume-structurer system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxTextBytes bounds the resume text accepted over the API.
const MaxTextBytes = 1 << 20

// ParseRequest represents a request to structure resume text.
type ParseRequest struct {
	Text            string `json:"text" validate:"max=1048576"`
	Source          string `json:"source,omitempty" validate:"omitempty,max=255"`
	ResumeID        string `json:"resume_id,omitempty" validate:"omitempty,uuid"` // prefer this resume's structured document
	Clean           bool   `json:"clean,omitempty"`
	NormalizeSkills bool   `json:"normalize_skills,omitempty"`
	Report          bool   `json:"report,omitempty"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ParseResponse is returned by the parse endpoints.
type ParseResponse struct {
	Document ResumeDocument `json:"document"`
	Origin   string         `json:"origin,omitempty"`
	Report   *Violations    `json:"report,omitempty"`
}

// Origin values describe which path produced a document.
const (
	OriginHeuristic  = "heuristic"
	OriginStructured = "structured"
)

// StoredResume represents a parsed resume persisted for later retrieval.
type StoredResume struct {
	ID        uuid.UUID      `json:"id"`
	Source    string         `json:"source"`
	Hash      string         `json:"hash"`
	Origin    string         `json:"origin"`
	Document  ResumeDocument `json:"document"`
	CreatedAt time.Time      `json:"created_at"`
}
