package parsing

import "fmt"

// StructuredInputError reports that input could not be read as a structured
// resume object. Parse treats it as a routing signal and never surfaces it.
type StructuredInputError struct {
	Message string
	Cause   error
}

func (e *StructuredInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structured input error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("structured input error: %s", e.Message)
}

func (e *StructuredInputError) Unwrap() error {
	return e.Cause
}
