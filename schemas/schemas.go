// Package schemas holds the JSON Schemas for the documents this module emits.
package schemas

import "embed"

// Schema file names.
const (
	ResumeDocument = "resume_document.schema.json"
	Violations     = "violations.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// All lists every embedded schema.
var All = []string{ResumeDocument, Violations}

// Read returns the contents of the named schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
