package ingestion

import "fmt"

// UnsupportedFormatError is returned for file extensions no extractor handles.
type UnsupportedFormatError struct {
	Source string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported file type for %s: no extension", e.Source)
	}
	return fmt.Sprintf("unsupported file type for %s: .%s", e.Source, e.Format)
}

// ExtractionError represents a failure reading text out of a document.
type ExtractionError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Source, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
