package ingestion

import "fmt"

// Error reports a dataset that could not be read or written.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error (%s): %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
