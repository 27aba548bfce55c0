package validation

import "fmt"

// DocumentFileError reports a resume document file that could not be checked.
// Malformed is true when the file was read but did not decode as a document.
type DocumentFileError struct {
	Path      string
	Malformed bool
	Cause     error
}

func (e *DocumentFileError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("resume document %s is not valid JSON: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("failed to read resume document %s: %v", e.Path, e.Cause)
}

func (e *DocumentFileError) Unwrap() error {
	return e.Cause
}
