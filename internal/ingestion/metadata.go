package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume text
type Metadata struct {
	Source    string `json:"source,omitempty"` // file path or upload name
	Format    string `json:"format"`           // extension without the dot, e.g. "pdf"
	Timestamp string `json:"timestamp"`        // RFC3339 format
	Hash      string `json:"hash"`             // SHA256 hex digest
	Chars     int    `json:"chars"`
	Lines     int    `json:"lines"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, source, format string) *Metadata {
	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n") + 1
	}
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ComputeHash(content),
		Chars:     utf8.RuneCountInString(content),
		Lines:     lines,
	}
}

// ComputeHash returns the SHA256 hex digest of content.
func ComputeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
